package orient

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/rxtimeline/pkg/core/selector"
)

func TestFlipIsInvolution(t *testing.T) {
	for _, o := range []Orientation{Vertical, Horizontal} {
		if o.Flip() == o {
			t.Errorf("%v.Flip() should differ from %v", o, o)
		}
		if got := o.Flip().Flip(); got != o {
			t.Errorf("%v.Flip().Flip() = %v", o, got)
		}
	}
	for _, a := range []AxisType{Time, Resources} {
		if a.Flip() == a {
			t.Errorf("%v.Flip() should differ from %v", a, a)
		}
		if got := a.Flip().Flip(); got != a {
			t.Errorf("%v.Flip().Flip() = %v", a, got)
		}
	}
}

func TestMatchPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid orientation")
		}
	}()
	Match(Orientation(7), 1, 2)
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{"Vertical", Vertical, false},
		{"horizontal", Horizontal, false},
		{" HORIZONTAL ", Horizontal, false},
		{"diagonal", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseOrientation(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOrientation(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseOrientation(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOrientationJSON(t *testing.T) {
	data, err := json.Marshal(struct{ O Orientation }{Horizontal})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"O":"Horizontal"}` {
		t.Errorf("marshal = %s", data)
	}

	var v struct{ O Orientation }
	if err := json.Unmarshal([]byte(`{"O":"vertical"}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.O != Vertical {
		t.Errorf("unmarshal = %v", v.O)
	}
}

func TestSelectByOrientation(t *testing.T) {
	type snap struct{ o Orientation }
	disc := selector.Slice(func(s snap) Orientation { return s.o })
	sel := SelectByOrientation(disc, ByOrientation[selector.Selector[snap, string]]{
		Vertical:   selector.Const[snap]("v"),
		Horizontal: selector.Const[snap]("h"),
	})
	if got := sel(snap{Vertical}); got != "v" {
		t.Errorf("got %q, want v", got)
	}
	if got := sel(snap{Horizontal}); got != "h" {
		t.Errorf("got %q, want h", got)
	}
}

func TestByAxis(t *testing.T) {
	b := ByAxis[int]{Time: 1, Resources: 2}
	if b.Get(Time) != 1 || b.Get(Resources) != 2 {
		t.Errorf("ByAxis.Get returned wrong values")
	}
	if b.Get(Time.Flip()) != 2 {
		t.Errorf("flip should select the other axis")
	}
}
