package timeline

import (
	"sort"

	"github.com/google/uuid"
)

// SnapPoints derives the candidate alignment times for a drag: the origin,
// the project end, the playhead, every marker, and the start/end of every
// item except the excluded one. Pass uuid.Nil to exclude nothing. The
// result is sorted and deduplicated; it is derived state, nothing is
// stored.
func SnapPoints(p *Project, excludeItemID uuid.UUID, playhead TimeUs) []TimeUs {
	points := []TimeUs{ZeroTime, p.End(), playhead}

	for _, track := range p.Timeline.Tracks {
		for _, item := range track.Items {
			if item.ItemID() == excludeItemID {
				continue
			}
			points = append(points, item.Start(), item.End())
		}
	}
	for _, m := range p.Timeline.Markers {
		points = append(points, m.Time)
	}

	sort.Slice(points, func(i, j int) bool { return points[i] < points[j] })
	out := points[:0]
	for i, pt := range points {
		if i == 0 || pt != out[len(out)-1] {
			out = append(out, pt)
		}
	}
	return out
}

// FindSnapPoint returns the candidate nearest to pos when that distance is
// within threshold, otherwise pos unchanged. Ties break on the first
// candidate encountered.
func FindSnapPoint(pos TimeUs, points []TimeUs, threshold TimeUs) TimeUs {
	best := pos
	bestDist := threshold + 1
	for _, pt := range points {
		if d := (pos - pt).Abs(); d < bestDist {
			best = pt
			bestDist = d
		}
	}
	if bestDist <= threshold {
		return best
	}
	return pos
}
