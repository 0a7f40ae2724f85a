package grid

import "testing"

func TestResolveHachure(t *testing.T) {
	none := OptDirection{}
	tests := []struct {
		prev, next OptDirection
		want       HachureAngle
	}{
		{Some(Up), Some(Down), 0},
		{Some(Left), Some(Right), 90},
		{Some(Right), Some(Down), -45},
		{Some(Down), Some(Right), -45},
		{Some(Up), Some(Left), -45},
		{Some(Left), Some(Up), -45},
		{Some(Left), Some(Down), 45},
		{Some(Down), Some(Left), 45},
		{Some(Up), Some(Right), 45},
		{Some(Right), Some(Up), 45},
		{none, Some(Up), 0},
		{none, Some(Right), 90},
		{none, none, 0},

		// straight runs and path ends follow the axis
		{Some(Up), Some(Up), 0},
		{Some(Down), Some(Down), 0},
		{Some(Right), Some(Right), 90},
		{Some(Left), Some(Left), 90},
		{Some(Down), none, 0},
		{Some(Left), none, 90},
		{none, Some(Down), 0},
		{none, Some(Left), 90},
	}

	for _, tt := range tests {
		t.Run(tt.prev.String()+"-"+tt.next.String(), func(t *testing.T) {
			if got := ResolveHachure(tt.prev, tt.next); got != tt.want {
				t.Errorf("ResolveHachure(%v, %v) = %v, want %v", tt.prev, tt.next, got, tt.want)
			}
			// pure function: same inputs, same output
			if again := ResolveHachure(tt.prev, tt.next); again != tt.want {
				t.Errorf("ResolveHachure not deterministic: %v then %v", tt.want, again)
			}
		})
	}
}

func TestResolveEdges_Literal(t *testing.T) {
	none := OptDirection{}
	tests := []struct {
		prev, next OptDirection
		want       EdgeMask
	}{
		{none, none, AllEdges},
		{none, Some(Up), EdgeLeft | EdgeRight | EdgeBottom},
		{none, Some(Right), EdgeLeft | EdgeTop | EdgeBottom},
		{none, Some(Down), EdgeLeft | EdgeRight | EdgeTop},
		{none, Some(Left), EdgeRight | EdgeTop | EdgeBottom},
		{Some(Up), none, AllEdges &^ EdgeBottom},
		{Some(Right), none, AllEdges &^ EdgeLeft},
		{Some(Down), none, AllEdges &^ EdgeTop},
		{Some(Left), none, AllEdges &^ EdgeRight},
		{Some(Up), Some(Up), EdgeLeft | EdgeRight},
		{Some(Right), Some(Right), EdgeTop | EdgeBottom},
		{Some(Up), Some(Right), EdgeLeft | EdgeTop},
		{Some(Right), Some(Down), EdgeRight | EdgeTop},
		{Some(Down), Some(Left), EdgeRight | EdgeBottom},
		{Some(Left), Some(Up), EdgeLeft | EdgeBottom},
	}

	for _, tt := range tests {
		t.Run(tt.prev.String()+"-"+tt.next.String(), func(t *testing.T) {
			if got := ResolveEdges(tt.prev, tt.next); got != tt.want {
				t.Errorf("ResolveEdges(%v, %v) = %v, want %v", tt.prev, tt.next, got, tt.want)
			}
		})
	}
}

func TestResolveEdges_Count(t *testing.T) {
	if got := ResolveEdges(OptDirection{}, OptDirection{}).Count(); got != 4 {
		t.Errorf("isolated cell: %d edges, want 4", got)
	}

	for _, d := range Directions {
		if got := ResolveEdges(OptDirection{}, Some(d)).Count(); got != 3 {
			t.Errorf("path start leaving %v: %d edges, want 3", d, got)
		}
		if got := ResolveEdges(Some(d), OptDirection{}).Count(); got != 3 {
			t.Errorf("path end entering %v: %d edges, want 3", d, got)
		}
	}

	for _, prev := range Directions {
		for _, next := range Directions {
			if next == prev.Opposite() {
				continue // a walk never doubles back
			}
			m := ResolveEdges(Some(prev), Some(next))
			if m.Count() != 2 {
				t.Errorf("ResolveEdges(%v, %v) = %v: %d edges, want 2", prev, next, m, m.Count())
			}
			straight := m == EdgeTop|EdgeBottom || m == EdgeLeft|EdgeRight
			if (prev == next) != straight {
				t.Errorf("ResolveEdges(%v, %v) = %v: straight=%v", prev, next, m, straight)
			}
			if m.Has(next.Side()) {
				t.Errorf("ResolveEdges(%v, %v) draws the exit border", prev, next)
			}
			if m.Has(prev.Opposite().Side()) {
				t.Errorf("ResolveEdges(%v, %v) draws the entry border", prev, next)
			}
		}
	}
}

func TestEdgeMaskString(t *testing.T) {
	tests := []struct {
		m    EdgeMask
		want string
	}{
		{0, "none"},
		{AllEdges, "top|right|bottom|left"},
		{EdgeLeft | EdgeTop, "top|left"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("EdgeMask(%d).String() = %q, want %q", tt.m, got, tt.want)
		}
	}
}
