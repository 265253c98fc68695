package detector

import "github.com/ocrkit-go/ocrkit/internal/geometry"

// component holds the label bookkeeping for one connected foreground
// region: its axis-aligned extent in map coordinates.
type component struct {
	label                  int
	minX, minY, maxX, maxY int
}

// labelComponents runs 4-connected component labeling over the mask.
// Returns per-pixel labels (0 = background) and component stats in
// scan order, which fixes the contour emission order downstream.
func labelComponents(mask []bool, w, h int) ([]int, []component) {
	labels := make([]int, len(mask))
	var comps []component
	next := 1
	queue := make([]int, 0, 256)

	for start, fg := range mask {
		if !fg || labels[start] != 0 {
			continue
		}
		comp := component{label: next, minX: w, minY: h, maxX: -1, maxY: -1}
		labels[start] = next
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			idx := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			x, y := idx%w, idx/w
			comp.minX = min(comp.minX, x)
			comp.minY = min(comp.minY, y)
			comp.maxX = max(comp.maxX, x)
			comp.maxY = max(comp.maxY, y)
			for _, n := range [4]int{idx - 1, idx + 1, idx - w, idx + w} {
				if n < 0 || n >= len(mask) {
					continue
				}
				// Horizontal neighbors must stay on the same row.
				if (n == idx-1 || n == idx+1) && n/w != y {
					continue
				}
				if mask[n] && labels[n] == 0 {
					labels[n] = next
					queue = append(queue, n)
				}
			}
		}
		comps = append(comps, comp)
		next++
	}
	return labels, comps
}

// traceOuterContour walks the outer boundary of one labeled component with
// Moore-neighbor tracing. Inner contours (holes) are never visited, which
// matches the outer-contours-only requirement. Collinear runs are collapsed
// as points are appended.
func traceOuterContour(labels []int, w, h int, comp component) []geometry.Point {
	sx, sy := findBoundaryStart(labels, w, h, comp)
	if sx < 0 {
		return nil
	}

	pts := make([]geometry.Point, 0, 64)
	appendPoint := func(x, y int) {
		p := geometry.Point{X: float64(x), Y: float64(y)}
		if n := len(pts); n >= 2 {
			a, b := pts[n-2], pts[n-1]
			if (b.X-a.X)*(p.Y-b.Y)-(b.Y-a.Y)*(p.X-b.X) == 0 {
				pts = pts[:n-1]
			}
		}
		pts = append(pts, p)
	}

	cx, cy := sx, sy
	bx, by := sx-1, sy
	startCx, startCy, startBx, startBy := cx, cy, bx, by
	appendPoint(cx, cy)

	maxSteps := 4*w*h + 8
	for range maxSteps {
		nx, ny, nbx, nby, ok := nextBoundaryPixel(labels, w, h, comp.label, cx, cy, bx, by)
		if !ok {
			break
		}
		bx, by = nbx, nby
		cx, cy = nx, ny
		if len(pts) == 0 || pts[len(pts)-1].X != float64(cx) || pts[len(pts)-1].Y != float64(cy) {
			appendPoint(cx, cy)
		}
		if cx == startCx && cy == startCy && bx == startBx && by == startBy {
			break
		}
	}

	// Drop a duplicated closing point if the walk re-emitted the start.
	if n := len(pts); n >= 2 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	return pts
}

func findBoundaryStart(labels []int, w, h int, comp component) (int, int) {
	isLabel := func(x, y int) bool {
		return x >= 0 && y >= 0 && x < w && y < h && labels[y*w+x] == comp.label
	}
	for y := comp.minY; y <= comp.maxY; y++ {
		for x := comp.minX; x <= comp.maxX; x++ {
			if !isLabel(x, y) {
				continue
			}
			if !isLabel(x+1, y) || !isLabel(x-1, y) || !isLabel(x, y+1) || !isLabel(x, y-1) {
				return x, y
			}
		}
	}
	return -1, -1
}

// mooreDX/mooreDY enumerate the 8-neighborhood clockwise starting east.
var (
	mooreDX = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	mooreDY = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
)

func nextBoundaryPixel(labels []int, w, h, label, cx, cy, bx, by int) (int, int, int, int, bool) {
	isLabel := func(x, y int) bool {
		return x >= 0 && y >= 0 && x < w && y < h && labels[y*w+x] == label
	}
	start := 0
	for i := range 8 {
		if mooreDX[i] == bx-cx && mooreDY[i] == by-cy {
			start = (i + 1) % 8
			break
		}
	}
	for k := range 8 {
		i := (start + k) % 8
		tx, ty := cx+mooreDX[i], cy+mooreDY[i]
		if isLabel(tx, ty) {
			return tx, ty, cx, cy, true
		}
		bx, by = tx, ty
	}
	return 0, 0, bx, by, false
}
