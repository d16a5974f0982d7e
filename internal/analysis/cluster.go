package analysis

// Cluster groups flagged line numbers by proximity. A single left-to-right
// pass keeps each number in the current cluster while it sits within window
// lines of the cluster's last member, so clusters are maximal and preserve
// discovery order.
func Cluster(indices []int, window int) [][]int {
	if len(indices) == 0 {
		return nil
	}
	clusters := [][]int{{indices[0]}}
	for _, n := range indices[1:] {
		last := clusters[len(clusters)-1]
		if n-last[len(last)-1] <= window {
			clusters[len(clusters)-1] = append(last, n)
		} else {
			clusters = append(clusters, []int{n})
		}
	}
	return clusters
}
