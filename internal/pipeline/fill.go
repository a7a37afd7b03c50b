package pipeline

import "image"

// FillHoles relabels every background region that is fully enclosed by
// foreground as foreground, producing a mask with no interior holes. The
// true background, any background region touching the image border, is left
// untouched, and foreground cells are never removed.
//
// Background regions grow under 8-connectivity (diagonal neighbors connect),
// so a hole linked to the border only through a diagonal chain of background
// cells is not filled. The fill runs in two linear passes: a flood fill over
// the border-reachable background using an explicit worklist (no recursion,
// so deep regions cannot overflow the stack), then a sweep that flips the
// unreached background cells.
//
// FillHoles is idempotent and a pure function of its input; mask is never
// mutated.
func FillHoles(mask *image.Gray) *image.Gray {
	bounds := mask.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	reached := make([]bool, w*h)
	queue := make([]int, 0, 2*(w+h))

	at := func(x, y int) uint8 {
		return mask.Pix[y*mask.Stride+x]
	}
	push := func(x, y int) {
		idx := y*w + x
		if !reached[idx] && at(x, y) == Background {
			reached[idx] = true
			queue = append(queue, idx)
		}
	}

	// Seed with every background cell on the border.
	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}

	// Flood the border-reachable background, 8-connected.
	for len(queue) > 0 {
		idx := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		x, y := idx%w, idx/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := x+dx, y+dy
				if nx >= 0 && nx < w && ny >= 0 && ny < h {
					push(nx, ny)
				}
			}
		}
	}

	// Everything still labeled background but unreached is a hole.
	filled := image.NewGray(bounds)
	for y := 0; y < h; y++ {
		row := y * mask.Stride
		dst := y * filled.Stride
		for x := 0; x < w; x++ {
			if mask.Pix[row+x] == Foreground || !reached[y*w+x] {
				filled.Pix[dst+x] = Foreground
			}
		}
	}
	return filled
}
