package analysis

import "testing"

func TestCluster(t *testing.T) {
	tests := []struct {
		name    string
		indices []int
		window  int
		want    [][]int
	}{
		{
			name:    "Empty Input",
			indices: nil,
			window:  8,
			want:    nil,
		},
		{
			name:    "Single Index",
			indices: []int{42},
			window:  8,
			want:    [][]int{{42}},
		},
		{
			name:    "Within Window Joins",
			indices: []int{10, 18},
			window:  8,
			want:    [][]int{{10, 18}},
		},
		{
			name:    "Beyond Window Splits",
			indices: []int{10, 19},
			window:  8,
			want:    [][]int{{10}, {19}},
		},
		{
			name:    "Chained Proximity",
			indices: []int{1, 5, 12, 19, 40},
			window:  8,
			want:    [][]int{{1, 5, 12, 19}, {40}},
		},
		{
			name:    "Window One",
			indices: []int{1, 2, 4},
			window:  1,
			want:    [][]int{{1, 2}, {4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cluster(tt.indices, tt.window)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d clusters, got %d (%v)", len(tt.want), len(got), got)
			}
			for i := range tt.want {
				if len(got[i]) != len(tt.want[i]) {
					t.Fatalf("cluster %d: expected %v, got %v", i, tt.want[i], got[i])
				}
				for j := range tt.want[i] {
					if got[i][j] != tt.want[i][j] {
						t.Errorf("cluster %d member %d: expected %d, got %d", i, j, tt.want[i][j], got[i][j])
					}
				}
			}
		})
	}
}
