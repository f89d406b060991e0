package input

// Token identifies a pointer-focus owner.
type Token struct {
	name string
}

func NewToken(name string) *Token {
	return &Token{name: name}
}

func (t *Token) String() string {
	if t == nil {
		return "<none>"
	}
	return t.name
}

// Arbiter grants exclusive pointer focus to one owner at a time. Handlers check Blocks before
// acting on a gesture and claim focus while they need the pointer stream.
type Arbiter struct {
	owner *Token
}

func NewArbiter() *Arbiter {
	return &Arbiter{}
}

// Claim gives focus to t unless another owner holds it.
func (a *Arbiter) Claim(t *Token) bool {
	if a.owner != nil && a.owner != t {
		return false
	}
	a.owner = t
	return true
}

// Release drops focus if t holds it.
func (a *Arbiter) Release(t *Token) {
	if a.owner == t {
		a.owner = nil
	}
}

func (a *Arbiter) Owner() *Token {
	return a.owner
}

// Blocks reports whether someone other than t holds focus.
func (a *Arbiter) Blocks(t *Token) bool {
	return a.owner != nil && a.owner != t
}
