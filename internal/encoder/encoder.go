// Package encoder implements the crossword constraint encoding: it turns a
// candidate word list and a grid size into a CNF formula (via internal/satcnf)
// whose satisfying assignments correspond to valid, densely-interlocking,
// 4-connected crosswords.
package encoder

import (
	"crossword/internal/domain"
	"crossword/internal/satcnf"
)

// Config tunes the encoding.
type Config struct {
	// Size is the grid's side length N (grid is N x N).
	Size int

	// MaxDiameter bounds the connectivity reachability construction
	// (spec reachability diameter D). Zero selects the default,
	// Size*Size-1, which is large enough to prove every cell reachable
	// from the anchor regardless of grid shape. Set it explicitly to
	// trade connectivity soundness at large N for a smaller formula.
	MaxDiameter int
}

type gridKey struct {
	X, Y int
	C    byte
}

// Encoder holds the variable tables and lookup structures for one
// generation attempt. It is not safe for concurrent use; callers running
// multiple generations concurrently must construct one Encoder per job.
type Encoder struct {
	cfg     Config
	formula *satcnf.Formula
	words   []string

	gridVar        map[gridKey]satcnf.Var
	gridVarsAtCell map[cellPos]map[byte]satcnf.Var
	filledVar      map[cellPos]satcnf.Var

	placements         []Placement
	placementVar       []satcnf.Var // parallel to placements
	placementsByWord   map[string][]int
	coveringPlacements map[gridKey][]int

	acrossPlacements []int
	downPlacements   []int
}

// New prepares an Encoder over the given candidate words and grid size. It
// does not yet emit any clauses; call Build to do that.
func New(words []string, cfg Config) *Encoder {
	e := &Encoder{
		cfg:                cfg,
		formula:            satcnf.NewFormula(),
		words:              words,
		gridVar:            make(map[gridKey]satcnf.Var),
		gridVarsAtCell:     make(map[cellPos]map[byte]satcnf.Var),
		filledVar:          make(map[cellPos]satcnf.Var),
		placementsByWord:   make(map[string][]int),
		coveringPlacements: make(map[gridKey][]int),
	}
	e.enumeratePlacements()
	return e
}

// Formula returns the underlying CNF formula, valid after Build.
func (e *Encoder) Formula() *satcnf.Formula {
	return e.formula
}

// Placements returns the full candidate placement list in the order the
// encoder assigned placement variables, for diagnostics.
func (e *Encoder) Placements() []Placement {
	return e.placements
}

func (e *Encoder) size() int {
	return e.cfg.Size
}

// enumeratePlacements mints one placement variable per (word, origin,
// direction) that fits in the grid, and registers every grid-letter
// variable each placement would assert.
func (e *Encoder) enumeratePlacements() {
	n := e.size()
	for _, w := range e.words {
		l := len(w)
		if l > n {
			continue
		}
		for _, dir := range [2]domain.Direction{domain.DirectionAcross, domain.DirectionDown} {
			maxX, maxY := n-1, n-1
			if dir == domain.DirectionAcross {
				maxX = n - l
			} else {
				maxY = n - l
			}
			for y := 0; y <= maxY; y++ {
				for x := 0; x <= maxX; x++ {
					if !fits(x, y, l, n, dir) {
						continue
					}
					e.addPlacement(Placement{Word: w, X: x, Y: y, Dir: dir})
				}
			}
		}
	}
}

func (e *Encoder) addPlacement(p Placement) {
	idx := len(e.placements)
	e.placements = append(e.placements, p)
	e.placementVar = append(e.placementVar, e.formula.NewVar())

	e.placementsByWord[p.Word] = append(e.placementsByWord[p.Word], idx)
	if p.Dir == domain.DirectionAcross {
		e.acrossPlacements = append(e.acrossPlacements, idx)
	} else {
		e.downPlacements = append(e.downPlacements, idx)
	}

	for i, cell := range p.cells() {
		c := p.Word[i]
		key := gridKey{X: cell.X, Y: cell.Y, C: c}
		e.coveringPlacements[key] = append(e.coveringPlacements[key], idx)
		e.gridVarOf(cell, c) // materialize lazily
	}
}

// gridVarOf returns the letter variable for (cell, c), minting it the
// first time it's requested. Cells/letters with no covering placement
// never acquire a variable at all: the constraint "no placement can ever
// write this letter here" is represented by the variable's absence rather
// than an explicit unit clause.
func (e *Encoder) gridVarOf(cell cellPos, c byte) satcnf.Var {
	key := gridKey{X: cell.X, Y: cell.Y, C: c}
	if v, ok := e.gridVar[key]; ok {
		return v
	}
	v := e.formula.NewVar()
	e.gridVar[key] = v
	if e.gridVarsAtCell[cell] == nil {
		e.gridVarsAtCell[cell] = make(map[byte]satcnf.Var)
	}
	e.gridVarsAtCell[cell][c] = v
	return v
}

func (e *Encoder) placementLit(idx int) satcnf.Lit {
	return e.placementVar[idx].Lit(true)
}

// Build emits every constraint clause (spec sections 4.3.1-4.3.8) into the
// formula. Call once per Encoder.
func (e *Encoder) Build() {
	e.encodeLetterUniqueness()
	e.encodePlacementImpliesLetters()
	e.encodePlacementImpliesBoundaryEmpty()
	e.encodeWordUniqueness()
	e.encodeGridImpliesPlacement()
	e.encodeSequenceValidity()
	e.encodeBothOrientationsUsed()
	e.encodeDensityAndConnectivity()
	e.encodeQuality()
}

// 4.3.1 Letter uniqueness: at most one letter per cell.
func (e *Encoder) encodeLetterUniqueness() {
	for _, letters := range e.gridVarsAtCell {
		lits := make([]satcnf.Lit, 0, len(letters))
		for _, v := range letters {
			lits = append(lits, v.Lit(true))
		}
		e.formula.AtMostOne(lits)
	}
}

// 4.3.2 Placement => letters.
func (e *Encoder) encodePlacementImpliesLetters() {
	for idx, p := range e.placements {
		pLit := e.placementLit(idx)
		for i, cell := range p.cells() {
			c := p.Word[i]
			gLit := e.gridVarOf(cell, c).Lit(true)
			e.formula.AddClause(pLit.Negative(), gLit)
		}
	}
}

// 4.3.3 Placement => boundary empty: a placement forbids any letter
// immediately before its start or after its end, so no word can be a
// prefix/suffix of a longer run.
func (e *Encoder) encodePlacementImpliesBoundaryEmpty() {
	n := e.size()
	for idx, p := range e.placements {
		pLit := e.placementLit(idx)
		if before, ok := p.before(n); ok {
			for _, v := range e.gridVarsAtCell[before] {
				e.formula.AddClause(pLit.Negative(), v.Lit(false))
			}
		}
		if after, ok := p.after(n); ok {
			for _, v := range e.gridVarsAtCell[after] {
				e.formula.AddClause(pLit.Negative(), v.Lit(false))
			}
		}
	}
}

// 4.3.4 Word uniqueness: at most one placement per word.
func (e *Encoder) encodeWordUniqueness() {
	for _, indices := range e.placementsByWord {
		lits := make([]satcnf.Lit, len(indices))
		for i, idx := range indices {
			lits[i] = e.placementLit(idx)
		}
		e.formula.AtMostOne(lits)
	}
}

// 4.3.5 Grid => placement: a letter in a cell must come from some
// placement that covers it with that letter.
func (e *Encoder) encodeGridImpliesPlacement() {
	for key, indices := range e.coveringPlacements {
		gLit := e.gridVar[key].Lit(true)
		clause := make([]satcnf.Lit, 0, len(indices)+1)
		clause = append(clause, gLit.Negative())
		for _, idx := range indices {
			clause = append(clause, e.placementLit(idx))
		}
		e.formula.AddClause(clause...)
	}
}

// 4.3.6 Sequence validity: a filled pair of adjacent cells with no filled
// cell before it must be covered by some placement starting at the pair's
// first cell in that direction. Prevents a floating, word-less run.
func (e *Encoder) encodeSequenceValidity() {
	n := e.size()

	startsAt := make(map[cellPos][]int) // across
	startsAtDown := make(map[cellPos][]int)
	for idx, p := range e.placements {
		start := cellPos{X: p.X, Y: p.Y}
		if p.Dir == domain.DirectionAcross {
			startsAt[start] = append(startsAt[start], idx)
		} else {
			startsAtDown[start] = append(startsAtDown[start], idx)
		}
	}

	for y := 0; y < n; y++ {
		for x := 0; x < n-1; x++ {
			cur := cellPos{X: x, Y: y}
			next := cellPos{X: x + 1, Y: y}
			e.sequenceClause(cur, next, x > 0, cellPos{X: x - 1, Y: y}, startsAt[cur])
		}
	}
	for x := 0; x < n; x++ {
		for y := 0; y < n-1; y++ {
			cur := cellPos{X: x, Y: y}
			next := cellPos{X: x, Y: y + 1}
			e.sequenceClause(cur, next, y > 0, cellPos{X: x, Y: y - 1}, startsAtDown[cur])
		}
	}
}

func (e *Encoder) sequenceClause(cur, next cellPos, hasPrev bool, prev cellPos, starters []int) {
	curF, ok1 := e.filled(cur)
	nextF, ok2 := e.filled(next)
	if !ok1 || !ok2 {
		// One of the two cells can never be filled, so the implication's
		// premise can never hold; nothing to assert.
		return
	}
	clause := []satcnf.Lit{curF.Lit(false), nextF.Lit(false)}
	if hasPrev {
		if prevF, ok := e.filled(prev); ok {
			clause = append(clause, prevF.Lit(true))
		}
	}
	for _, idx := range starters {
		clause = append(clause, e.placementLit(idx))
	}
	e.formula.AddClause(clause...)
}

// 4.3.7 Both orientations used: at least one across and one down
// placement, strengthened to at-least-three in a direction that has at
// least three candidate placements. The count is of placements, not of
// distinct words, so the stronger floor can make the formula Unsat when
// fewer than three words fit in that direction.
func (e *Encoder) encodeBothOrientationsUsed() {
	e.encodeAtLeastOrientation(e.acrossPlacements)
	e.encodeAtLeastOrientation(e.downPlacements)
}

func (e *Encoder) encodeAtLeastOrientation(indices []int) {
	lits := make([]satcnf.Lit, len(indices))
	for i, idx := range indices {
		lits[i] = e.placementLit(idx)
	}
	k := 1
	if len(lits) >= 3 {
		k = 3
	}
	e.formula.AtLeastK(lits, k)
}

// filled returns the filled-variable for a cell, minting the two-way
// definition clauses the first time it's needed. A cell with no letter
// variables at all can never be filled, and is reported via ok=false.
func (e *Encoder) filled(cell cellPos) (satcnf.Var, bool) {
	if v, ok := e.filledVar[cell]; ok {
		return v, true
	}
	letters := e.gridVarsAtCell[cell]
	if len(letters) == 0 {
		return 0, false
	}
	v := e.formula.NewVar()
	e.filledVar[cell] = v

	// f(x,y) -> OR_c g(x,y,c)
	clause := make([]satcnf.Lit, 0, len(letters)+1)
	clause = append(clause, v.Lit(false))
	for _, g := range letters {
		clause = append(clause, g.Lit(true))
		// g(x,y,c) -> f(x,y)
		e.formula.AddClause(g.Lit(false), v.Lit(true))
	}
	e.formula.AddClause(clause...)

	return v, true
}

// 4.3.8 Density and connectivity.
func (e *Encoder) encodeDensityAndConnectivity() {
	n := e.size()

	allFilled := make([]satcnf.Lit, 0, n*n)
	filledAt := make(map[cellPos]satcnf.Var, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			cell := cellPos{X: x, Y: y}
			if v, ok := e.filled(cell); ok {
				filledAt[cell] = v
				allFilled = append(allFilled, v.Lit(true))
			}
		}
	}

	kMin := n * n / 2
	if kMin < 15 {
		kMin = 15
	}
	e.formula.AtLeastK(allFilled, kMin)

	e.encodeConnectivity(n, filledAt)
}

// encodeConnectivity anchors the proof at the filled cell with the
// smallest (row, column) and asserts every filled cell is reachable from
// it within MaxDiameter 4-connected steps.
func (e *Encoder) encodeConnectivity(n int, filledAt map[cellPos]satcnf.Var) {
	rowFilled := make([]satcnf.Var, n)
	for y := 0; y < n; y++ {
		lits := make([]satcnf.Lit, 0, n)
		for x := 0; x < n; x++ {
			if v, ok := filledAt[cellPos{X: x, Y: y}]; ok {
				lits = append(lits, v.Lit(true))
			}
		}
		if len(lits) == 0 {
			continue
		}
		v := e.formula.NewVar()
		rowFilled[y] = v
		clause := append([]satcnf.Lit{v.Lit(false)}, lits...)
		e.formula.AddClause(clause...)
		for _, l := range lits {
			e.formula.AddClause(l.Negative(), v.Lit(true))
		}
	}

	anchorRow := make([]satcnf.Var, n)
	for y := 0; y < n; y++ {
		if rowFilled[y] == 0 {
			continue
		}
		v := e.formula.NewVar()
		anchorRow[y] = v
		e.formula.AddClause(v.Lit(false), rowFilled[y].Lit(true))
		for y2 := 0; y2 < y; y2++ {
			if rowFilled[y2] != 0 {
				e.formula.AddClause(v.Lit(false), rowFilled[y2].Lit(false))
			}
		}
		clause := []satcnf.Lit{rowFilled[y].Lit(false)}
		for y2 := 0; y2 < y; y2++ {
			if rowFilled[y2] != 0 {
				clause = append(clause, rowFilled[y2].Lit(true))
			}
		}
		clause = append(clause, v.Lit(true))
		e.formula.AddClause(clause...)
	}

	anchor := make(map[cellPos]satcnf.Var)
	for y := 0; y < n; y++ {
		if anchorRow[y] == 0 {
			continue
		}
		for x := 0; x < n; x++ {
			cell := cellPos{X: x, Y: y}
			fv, ok := filledAt[cell]
			if !ok {
				continue
			}
			v := e.formula.NewVar()
			anchor[cell] = v
			e.formula.AddClause(v.Lit(false), anchorRow[y].Lit(true))
			e.formula.AddClause(v.Lit(false), fv.Lit(true))
			for x2 := 0; x2 < x; x2++ {
				if fv2, ok := filledAt[cellPos{X: x2, Y: y}]; ok {
					e.formula.AddClause(v.Lit(false), fv2.Lit(false))
				}
			}
			clause := []satcnf.Lit{anchorRow[y].Lit(false), fv.Lit(false)}
			for x2 := 0; x2 < x; x2++ {
				if fv2, ok := filledAt[cellPos{X: x2, Y: y}]; ok {
					clause = append(clause, fv2.Lit(true))
				}
			}
			clause = append(clause, v.Lit(true))
			e.formula.AddClause(clause...)
		}
	}

	d := e.cfg.MaxDiameter
	if d <= 0 {
		d = n*n - 1
	}
	if d < 0 {
		d = 0
	}

	// r[cell][i]
	reach := make(map[cellPos][]satcnf.Var)
	for cell := range filledAt {
		reach[cell] = make([]satcnf.Var, d+1)
	}

	reachVar := func(cell cellPos, i int) (satcnf.Var, bool) {
		vars, ok := reach[cell]
		if !ok {
			return 0, false
		}
		if vars[i] == 0 {
			vars[i] = e.formula.NewVar()
			reach[cell][i] = vars[i]
		}
		return vars[i], true
	}

	for cell := range filledAt {
		v, _ := reachVar(cell, 0)
		a, hasAnchor := anchor[cell]
		if hasAnchor {
			e.formula.AddClause(v.Lit(false), a.Lit(true))
			e.formula.AddClause(a.Lit(false), v.Lit(true))
		} else {
			e.formula.AddClause(v.Lit(false))
		}
	}

	neighborsOf := func(c cellPos) []cellPos {
		return []cellPos{
			{X: c.X - 1, Y: c.Y}, {X: c.X + 1, Y: c.Y},
			{X: c.X, Y: c.Y - 1}, {X: c.X, Y: c.Y + 1},
		}
	}

	for i := 1; i <= d; i++ {
		for cell, fv := range filledAt {
			v, _ := reachVar(cell, i)
			e.formula.AddClause(v.Lit(false), fv.Lit(true))

			clause := []satcnf.Lit{v.Lit(false)}
			if prev, ok := reachVarExisting(reach, cell, i-1); ok {
				clause = append(clause, prev.Lit(true))
			}
			for _, nb := range neighborsOf(cell) {
				if _, ok := filledAt[nb]; !ok {
					continue
				}
				if pv, ok := reachVarExisting(reach, nb, i-1); ok {
					clause = append(clause, pv.Lit(true))
				}
			}
			e.formula.AddClause(clause...)
		}
	}

	for cell, fv := range filledAt {
		rd, ok := reachVarExisting(reach, cell, d)
		if !ok {
			// Unreachable within the diameter bound: forbid the cell from
			// ever being filled rather than leave the formula unsound.
			e.formula.AddClause(fv.Lit(false))
			continue
		}
		e.formula.AddClause(fv.Lit(false), rd.Lit(true))
	}
}

func reachVarExisting(reach map[cellPos][]satcnf.Var, cell cellPos, i int) (satcnf.Var, bool) {
	if i < 0 {
		return 0, false
	}
	vars, ok := reach[cell]
	if !ok || i >= len(vars) || vars[i] == 0 {
		return 0, false
	}
	return vars[i], true
}

// encodeQuality asserts the soft word-count floor: at least
// floor(K_quality/10) placement variables must be true, where
// K_quality = max(20, floor(N^2 * 0.4)).
func (e *Encoder) encodeQuality() {
	n := e.size()
	kQuality := (n * n * 4) / 10
	if kQuality < 20 {
		kQuality = 20
	}
	k := kQuality / 10

	all := make([]satcnf.Lit, len(e.placements))
	for i := range e.placements {
		all[i] = e.placementLit(i)
	}
	e.formula.AtLeastK(all, k)
}
