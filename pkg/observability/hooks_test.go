package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "activities.csv")
	p.OnLoadComplete(ctx, "activities.csv", 12, time.Second, nil)
	p.OnLayoutStart(ctx, 12)
	p.OnLayoutComplete(ctx, 11, time.Second, nil)
	p.OnActivityRejected(ctx, "a1", "finish before start")
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "view")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/layout")
	h.OnResponse(ctx, "POST", "/v1/layout", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() default is not a no-op")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() default is not a no-op")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() default is not a no-op")
	}

	p := &rejections{}
	SetPipelineHooks(p)
	c := &testCacheHooks{}
	SetCacheHooks(c)
	h := &testHTTPHooks{}
	SetHTTPHooks(h)

	if Pipeline() != p || Cache() != c || HTTP() != h {
		t.Error("registered hooks not returned")
	}

	Pipeline().OnActivityRejected(context.Background(), "x", "no series")
	if len(p.ids) != 1 || p.ids[0] != "x" {
		t.Errorf("rejections = %v", p.ids)
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() did not restore the no-op hooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	p := &rejections{}
	SetPipelineHooks(p)
	SetPipelineHooks(nil)
	SetCacheHooks(nil)
	SetHTTPHooks(nil)

	if Pipeline() != p {
		t.Error("SetPipelineHooks(nil) replaced the hooks")
	}
}

type rejections struct {
	NoopPipelineHooks
	ids []string
}

func (r *rejections) OnActivityRejected(_ context.Context, id, _ string) {
	r.ids = append(r.ids, id)
}

type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
