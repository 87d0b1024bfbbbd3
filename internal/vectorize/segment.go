package vectorize

import "image"

// Region is a maximal 4-connected set of pixels sharing one color.
type Region struct {
	ID     int           `json:"id"`
	Color  Color         `json:"color"`
	Pixels []image.Point `json:"-"`
}

// Bounds returns the smallest rectangle containing every pixel of r.
func (r *Region) Bounds() image.Rectangle {
	if len(r.Pixels) == 0 {
		return image.Rectangle{}
	}
	b := image.Rectangle{Min: r.Pixels[0], Max: r.Pixels[0].Add(image.Pt(1, 1))}
	for _, p := range r.Pixels[1:] {
		b = b.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return b
}

// Segmentation is the region partition of a grid. Labels holds the region id
// of every pixel at index y*Width+x, or -1 for pixels skipped as transparent.
type Segmentation struct {
	Width   int
	Height  int
	Labels  []int
	Regions []Region
}

// ColorRegions groups the regions of one color.
type ColorRegions struct {
	Color   Color
	Regions []*Region
}

// Label returns the region id at (x, y), or -1 when (x, y) is outside the
// grid or belongs to no region.
func (s *Segmentation) Label(x, y int) int {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return -1
	}
	return s.Labels[y*s.Width+x]
}

// ByColor returns the regions grouped by color. Colors appear in the order
// their first region was discovered and regions keep id order within a color.
func (s *Segmentation) ByColor() []ColorRegions {
	var groups []ColorRegions
	index := make(map[Color]int)
	for i := range s.Regions {
		r := &s.Regions[i]
		gi, ok := index[r.Color]
		if !ok {
			gi = len(groups)
			index[r.Color] = gi
			groups = append(groups, ColorRegions{Color: r.Color})
		}
		groups[gi].Regions = append(groups[gi].Regions, r)
	}
	return groups
}

var neighbourOffsets = [4]image.Point{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// Segment partitions g into 4-connected regions of identical color. Pixels
// are scanned row by row and region ids are assigned in discovery order. With
// opaque set, pixels whose alpha is zero are left out of every region.
func Segment(g *Grid, opaque bool) *Segmentation {
	w, h := g.Width, g.Height
	s := &Segmentation{
		Width:  w,
		Height: h,
		Labels: make([]int, w*h),
	}
	for i := range s.Labels {
		s.Labels[i] = -1
	}
	visited := make([]bool, w*h)
	queue := make([]int, 0, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if visited[idx] {
				continue
			}
			c := g.Pix[idx]
			if opaque && c.A == 0 {
				visited[idx] = true
				continue
			}

			id := len(s.Regions)
			region := Region{ID: id, Color: c}
			visited[idx] = true
			queue = append(queue[:0], idx)
			for head := 0; head < len(queue); head++ {
				cur := queue[head]
				cx, cy := cur%w, cur/w
				s.Labels[cur] = id
				region.Pixels = append(region.Pixels, image.Pt(cx, cy))

				for _, off := range neighbourOffsets {
					nx, ny := cx+off.X, cy+off.Y
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					nidx := ny*w + nx
					if visited[nidx] || g.Pix[nidx] != c {
						continue
					}
					visited[nidx] = true
					queue = append(queue, nidx)
				}
			}
			s.Regions = append(s.Regions, region)
		}
	}
	return s
}
