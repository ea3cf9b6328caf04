package models

// WorkflowAction is one entry in a record's append-only audit trail. Every
// successful mutation appends exactly one. Timestamps and transaction
// references are supplied by the ledger runtime, never read from a local
// clock, so replicas replaying the same transaction produce identical trails.
type WorkflowAction struct {
	Type           ActionType     `json:"type"`
	Actor          *Actor         `json:"actor,omitempty"`
	Timestamp      Timestamp      `json:"timestamp"`
	PreviousStatus ContractStatus `json:"previousStatus,omitempty"`
	NewStatus      ContractStatus `json:"newStatus"`
	TransactionID  string         `json:"transactionId,omitempty"`
	Signature      string         `json:"signature,omitempty"`
	Comment        string         `json:"comment,omitempty"`
}
