package enums

// EventType names the domain events published to Pub/Sub.
type EventType string

const (
	EventParticipationJoined EventType = "participation.joined"
)

// String implements fmt.Stringer.
func (e EventType) String() string {
	return string(e)
}
