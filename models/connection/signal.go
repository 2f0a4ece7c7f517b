package connection

const (
	CodeSessionID uint8 = iota
	CodeMatchCreated

	// Fleet setup
	CodeRequestPlacement
	CodePlacement
	CodeInvalidPlacement
	CodePlacementAccepted

	// Turns
	CodeTurnStart
	CodeRequestCoordinate
	CodeAttack
	CodeInvalidCoordinate
	CodeShotOutcome
	CodeEndGame

	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)
