package types

// Outcome is the terminal state of a single file's trip through the router.
type Outcome string

const (
	OutcomeMoved            Outcome = "moved"
	OutcomeInPlace          Outcome = "in_place"
	OutcomeVanished         Outcome = "vanished"
	OutcomeNoRule           Outcome = "no_rule"
	OutcomeDestCreateFailed Outcome = "dest_create_failed"
	OutcomeCollision        Outcome = "collision"
	OutcomeMoveFailed       Outcome = "move_failed"
)

// Succeeded reports whether the file ended up at its destination
func (o Outcome) Succeeded() bool {
	return o == OutcomeMoved || o == OutcomeInPlace
}

// IsWarning reports outcomes that are expected during normal use and
// should not be shown as errors.
func (o Outcome) IsWarning() bool {
	return o == OutcomeNoRule || o == OutcomeCollision || o == OutcomeVanished
}
