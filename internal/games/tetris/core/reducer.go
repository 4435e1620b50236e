package core

// Apply returns the state that results from applying e to s. It never
// modifies s. Events that are not legal in the current position (a blocked
// move, a second hold) return s unchanged.
func Apply(r Rules, s State, e Event) State {
	switch e := e.(type) {
	case Tick:
		return tick(r, s)
	case Move:
		return move(s, e.DX, e.DY)
	case Rotate:
		s.Active = s.Active.Rotate(e.Dir, s.Board)
		return s.withHighlight()
	case Down:
		if e.On {
			s.GravityAccel++
		} else {
			s.GravityAccel = 0
		}
		return s
	case Drop:
		s.Active = s.Active.HardDrop(s.Board)
		return lock(r, s)
	case LockDelay:
		return lockDelay(r, s, e)
	case Hold:
		return hold(r, s)
	case Pause:
		s.Paused = e.On
		return s
	case Connect:
		s.Connected = e.On
		return s
	case GarbageOut:
		return garbage(r, s, e.Cleared)
	case Restart:
		return restart(r, s)
	default:
		return s
	}
}

func tick(r Rules, s State) State {
	s.Frames++
	if s.Frames < r.GravityInterval(s.Level, s.GravityAccel) {
		return s
	}
	s = move(s, 0, 1)
	s.Frames = 0
	return s
}

func move(s State, dx, dy int) State {
	moved := s.Active.Moved(P(dx, dy))
	if !moved.Valid(s.Board) {
		return s
	}
	s.Active = moved
	return s.withHighlight()
}

// lockDelay counts grounded time. The counter restarts whenever the piece is
// free to fall again.
func lockDelay(r Rules, s State, e LockDelay) State {
	if s.Active.CanDescend(s.Board) {
		s.LockElapsed = 0
		return s
	}
	s.LockElapsed += e.Elapsed
	if s.LockElapsed >= r.LockDelay {
		return lock(r, s)
	}
	return s
}

// lock merges the active piece, scores cleared rows and rolls the next piece in.
func lock(r Rules, s State) State {
	next := s.Next

	merged := s.Board.Merge(s.Active)
	toppedOut := merged.IsTopRowFilled()
	cleared, board := merged.ClearFullRows()
	s.Board = board
	s.Score += 100 * cleared * cleared
	s.Lines += cleared
	s.Level = r.LevelFor(s.Lines)
	s.HighScore = max(s.HighScore, s.Score)
	s.SwapUsed = false
	s.LastClear = cleared
	s.GravityAccel = 0
	s.LockElapsed = 0
	s = s.rollover(r)

	// Top-out is judged on the merged board, before clears shift row 0 down.
	if toppedOut {
		s.GameOver = true
		s.Next = next
	}
	return s
}

func hold(r Rules, s State) State {
	if s.SwapUsed {
		return s
	}
	s.SwapUsed = true
	s = s.resetTimers()

	if s.Held == nil {
		held := PieceFromValue(s.Seq.Value, r.Width)
		s.Held = &held
		return s.rollover(r)
	}

	held := respawn(s.Active, r.Width)
	s.Active = *s.Held
	s.Held = &held
	return s.withHighlight()
}

func garbage(r Rules, s State, cleared int) State {
	rows := GarbageRows(cleared)
	if rows == 0 {
		return s
	}

	lost, board := s.Board.RaiseGarbage(rows, int(s.Seq.Value%uint32(r.Width)))
	s.Board = board
	s.Active = PieceFromValue(s.Seq.Value, r.Width)
	s = s.resetTimers().withHighlight()
	if lost || s.Board.IsTopRowFilled() {
		s.GameOver = true
	}
	return s
}

// restart starts over on the live sequence. High score and the opponent link
// survive.
func restart(r Rules, s State) State {
	fresh := State{
		Board:     EmptyBoard(r.Width, r.Height),
		Seq:       s.Seq,
		Level:     1,
		HighScore: s.HighScore,
		Connected: s.Connected,
	}
	return fresh.rollover(r)
}
