package tui

import "testing"

func TestParseRoute(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    route
		wantErr bool
	}{
		{in: "", want: route{name: routeHome}},
		{in: "/", want: route{name: routeHome}},
		{in: "/home", want: route{name: routeHome}},
		{in: "/projects/proj-a", want: route{name: routeProject, projectID: "proj-a"}},
		{in: "/projects/a%20b", want: route{name: routeProject, projectID: "a b"}},
		{in: "/projects/", wantErr: true},
		{in: "/projects/a/b", wantErr: true},
		{in: "/settings", wantErr: true},
	}
	for _, tc := range cases {
		got, err := parseRoute(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error, got %+v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: got %+v want %+v", tc.in, got, tc.want)
		}
	}
}

func TestRoutePathRoundTrip(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"proj-a", "with space", "ünï"} {
		r := route{name: routeProject, projectID: id}
		got, err := parseRoute(r.path())
		if err != nil {
			t.Fatalf("%q: %v", id, err)
		}
		if got != r {
			t.Fatalf("%q: got %+v", id, got)
		}
	}
}
