package geo

import (
	"math"
	"testing"
)

func TestDecodePolyline(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		want    []Point
	}{
		{
			name:    "empty string",
			encoded: "",
			want:    nil,
		},
		{
			name:    "single point",
			encoded: "_p~iF~ps|U",
			want:    []Point{{Lat: 38.5, Lon: -120.2}},
		},
		{
			name:    "google example",
			encoded: "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
			want: []Point{
				{Lat: 38.5, Lon: -120.2},
				{Lat: 40.7, Lon: -120.95},
				{Lat: 43.252, Lon: -126.453},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodePolyline(tt.encoded)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d points, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !closeEnough(got[i].Lat, tt.want[i].Lat) || !closeEnough(got[i].Lon, tt.want[i].Lon) {
					t.Errorf("point %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := []Point{
		{Lat: 36.1699, Lon: -115.1398},
		{Lat: 35.1983, Lon: -111.6513},
		{Lat: 34.0522, Lon: -118.2437},
	}

	decoded := DecodePolyline(EncodePolyline(original))
	if len(decoded) != len(original) {
		t.Fatalf("got %d points, want %d", len(decoded), len(original))
	}
	for i := range decoded {
		if !closeEnough(decoded[i].Lat, original[i].Lat) || !closeEnough(decoded[i].Lon, original[i].Lon) {
			t.Errorf("point %d: got %+v, want %+v", i, decoded[i], original[i])
		}
	}
}

func TestDistanceMiles(t *testing.T) {
	// LA to Las Vegas, roughly 229 miles great circle.
	la := Point{Lat: 34.0522, Lon: -118.2437}
	lv := Point{Lat: 36.1699, Lon: -115.1398}

	d := DistanceMiles(la, lv)
	if d < 220 || d > 240 {
		t.Errorf("DistanceMiles(LA, LV) = %.1f, want ~229", d)
	}

	if d := DistanceMiles(la, la); d != 0 {
		t.Errorf("distance to self = %f, want 0", d)
	}
}

func TestLengthMiles(t *testing.T) {
	if got := LengthMiles(nil); got != 0 {
		t.Errorf("empty path length = %f, want 0", got)
	}
	if got := LengthMiles([]Point{{Lat: 1, Lon: 1}}); got != 0 {
		t.Errorf("single point length = %f, want 0", got)
	}

	path := []Point{
		{Lat: 34.0522, Lon: -118.2437},
		{Lat: 35.1983, Lon: -111.6513},
		{Lat: 36.1699, Lon: -115.1398},
	}
	sum := DistanceMiles(path[0], path[1]) + DistanceMiles(path[1], path[2])
	if got := LengthMiles(path); math.Abs(got-sum) > 1e-9 {
		t.Errorf("LengthMiles = %f, want %f", got, sum)
	}
}

func TestCumulativeMiles(t *testing.T) {
	if got := CumulativeMiles(nil); got != nil {
		t.Errorf("empty path cum = %v, want nil", got)
	}

	path := []Point{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 1},
		{Lat: 0, Lon: 2},
	}
	cum := CumulativeMiles(path)
	if len(cum) != 3 {
		t.Fatalf("len = %d, want 3", len(cum))
	}
	if cum[0] != 0 {
		t.Errorf("cum[0] = %f, want 0", cum[0])
	}
	if cum[2] <= cum[1] || cum[1] <= cum[0] {
		t.Errorf("prefix sums not increasing: %v", cum)
	}
	if math.Abs(cum[2]-LengthMiles(path)) > 1e-9 {
		t.Errorf("cum[last] = %f, want total length %f", cum[2], LengthMiles(path))
	}
}

func TestPointAlong(t *testing.T) {
	path := []Point{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 1},
		{Lat: 0, Lon: 2},
	}
	cum := CumulativeMiles(path)
	total := cum[len(cum)-1]

	t.Run("zero distance returns start", func(t *testing.T) {
		p, ok := PointAlong(path, cum, 0)
		if !ok || p != path[0] {
			t.Errorf("got %+v ok=%v, want start point", p, ok)
		}
	})

	t.Run("halfway lands mid path", func(t *testing.T) {
		p, ok := PointAlong(path, cum, total/2)
		if !ok {
			t.Fatal("expected ok")
		}
		if math.Abs(p.Lon-1) > 0.01 {
			t.Errorf("halfway lon = %f, want ~1", p.Lon)
		}
	})

	t.Run("full distance returns end", func(t *testing.T) {
		p, ok := PointAlong(path, cum, total)
		if !ok {
			t.Fatal("expected ok")
		}
		if math.Abs(p.Lon-2) > 1e-9 {
			t.Errorf("end lon = %f, want 2", p.Lon)
		}
	})

	t.Run("beyond end fails", func(t *testing.T) {
		if _, ok := PointAlong(path, cum, total+1); ok {
			t.Error("expected not ok beyond path end")
		}
	})

	t.Run("empty path fails", func(t *testing.T) {
		if _, ok := PointAlong(nil, nil, 1); ok {
			t.Error("expected not ok for empty path")
		}
	})
}

func TestPathBounds(t *testing.T) {
	if _, ok := PathBounds(nil); ok {
		t.Error("expected not ok for empty path")
	}

	b, ok := PathBounds([]Point{
		{Lat: 2, Lon: -3},
		{Lat: -1, Lon: 5},
		{Lat: 4, Lon: 0},
	})
	if !ok {
		t.Fatal("expected ok")
	}
	want := Bounds{MinLat: -1, MinLon: -3, MaxLat: 4, MaxLon: 5}
	if b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
}

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) < 1e-5
}
