package enum

// CounterpartyKind classifies who the desk is trading with. Dealers are
// listed in the agent directory; anyone else is a walk-in customer.
type CounterpartyKind string

const (
	CounterpartyDealer CounterpartyKind = "dealer"
	CounterpartyWalkIn CounterpartyKind = "walkin"
)
