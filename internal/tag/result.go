package tag

// Reject explains why a command was refused. Rejections are expected
// outcomes of normal play (two players tagging in the same instant, a full
// session) and are returned as values, never as errors.
type Reject string

const (
	RejectNone            Reject = ""
	RejectSessionNotFound Reject = "session not found"
	RejectSessionFull     Reject = "session is full"
	RejectNotActive       Reject = "game is not active"
	RejectNotIt           Reject = "you are not it"
	RejectAttackerMissing Reject = "attacker is not in the session"
	RejectTargetMissing   Reject = "target is not in the session"
	RejectOutOfRange      Reject = "too far away"
	RejectOnCooldown      Reject = "tag on cooldown"
	RejectPlayerMissing   Reject = "player is not in the session"
)

// OK reports whether the command was accepted.
func (r Reject) OK() bool {
	return r == RejectNone
}

// TagResult describes the outcome of a tag attempt. On rejection only Reject
// is set and no state was mutated.
type TagResult struct {
	Reject     Reject  `json:"reject,omitempty"`
	Points     int     `json:"points,omitempty"`
	ChainBonus float64 `json:"chain_bonus,omitempty"`
	NewItID    string  `json:"new_it_id,omitempty"`
}
