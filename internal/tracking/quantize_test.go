package tracking

import "testing"

func TestRoundCoordinate(t *testing.T) {
	if got := RoundCoordinate(28.61394512345); got != 28.613945 {
		t.Errorf("RoundCoordinate = %v, want 28.613945", got)
	}
	if got := RoundCoordinate(-77.2090217); got != -77.209022 {
		t.Errorf("RoundCoordinate = %v, want -77.209022", got)
	}
}

func TestQuantizeSpeed(t *testing.T) {
	cases := map[float64]float64{
		0:    0,
		2.4:  0,
		2.5:  5,
		43:   45,
		42.4: 40,
		67:   65,
	}
	for in, want := range cases {
		if got := QuantizeSpeed(in); got != want {
			t.Errorf("QuantizeSpeed(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestQuantizeHeading(t *testing.T) {
	cases := map[float64]float64{
		0:   0,
		4.9: 0,
		5:   10,
		273: 270,
		359: 360,
	}
	for in, want := range cases {
		if got := QuantizeHeading(in); got != want {
			t.Errorf("QuantizeHeading(%v) = %v, want %v", in, got, want)
		}
	}
}
