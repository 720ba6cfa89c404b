package sokoban

// deadlocked reports whether some unstored box can never reach a
// storage cell: it sits in a grid corner, is wedged against a wall or
// obstacles, or stands on a boundary row or column without storage.
func deadlocked(s *State) bool {
	for box := range s.boxes {
		if _, stored := s.storage[box]; stored {
			continue
		}
		if boxInCorner(s, box) || boxInPseudoCorner(s, box) || boxOnBareEdge(s, box) {
			return true
		}
	}
	return false
}

func boxInCorner(s *State, box Point) bool {
	onX := box.X == 0 || box.X == s.width-1
	onY := box.Y == 0 || box.Y == s.height-1
	return onX && onY
}

// boxInPseudoCorner checks wedges that act like corners: a wall-side
// box with a vertical or horizontal neighbour blocked, or a box with
// an obstacle on one axis and an obstacle beside it on the other.
// Neighbouring boxes count as blockers only in the wall case, since
// away from walls the other box may still be moved.
func boxInPseudoCorner(s *State, box Point) bool {
	up := Point{X: box.X, Y: box.Y - 1}
	down := Point{X: box.X, Y: box.Y + 1}
	left := Point{X: box.X - 1, Y: box.Y}
	right := Point{X: box.X + 1, Y: box.Y}

	if s.boxOrObstacle(up) || s.boxOrObstacle(down) {
		if box.X == 0 || box.X == s.width-1 {
			return true
		}
	}
	if s.boxOrObstacle(left) || s.boxOrObstacle(right) {
		if box.Y == 0 || box.Y == s.height-1 {
			return true
		}
	}

	if s.obstacleAt(up) && (s.obstacleAt(left) || s.obstacleAt(right)) {
		return true
	}
	if s.obstacleAt(down) && (s.obstacleAt(left) || s.obstacleAt(right)) {
		return true
	}
	return false
}

// boxOnBareEdge reports a box on a boundary row or column that holds
// no free storage: the box can only slide along that line, so it can
// never be stored.
func boxOnBareEdge(s *State, box Point) bool {
	free := s.freeStorage()
	if box.X == 0 || box.X == s.width-1 {
		found := false
		for p := range free {
			if p.X == box.X {
				found = true
				break
			}
		}
		if !found {
			return true
		}
	}
	if box.Y == 0 || box.Y == s.height-1 {
		found := false
		for p := range free {
			if p.Y == box.Y {
				found = true
				break
			}
		}
		if !found {
			return true
		}
	}
	return false
}

// freeStorage returns the storage cells not already holding a box.
func (s *State) freeStorage() map[Point]struct{} {
	free := make(map[Point]struct{}, len(s.storage))
	for p := range s.storage {
		if _, ok := s.boxes[p]; !ok {
			free[p] = struct{}{}
		}
	}
	return free
}

func (s *State) boxOrObstacle(p Point) bool {
	if _, ok := s.boxes[p]; ok {
		return true
	}
	return s.obstacleAt(p)
}

func (s *State) obstacleAt(p Point) bool {
	_, ok := s.obstacles[p]
	return ok
}
