package types

import (
	"encoding/json"
	"time"
)

// ScanKey selects the index the funding ledger is queried by.
type ScanKey string

const (
	ScanKeyOwnerAddress  ScanKey = "ownerAddress"
	ScanKeyWalletAddress ScanKey = "walletAddress"
)

// Operation is one funding ledger record. The ledger is append-only and
// externally authoritative; this library only reads it, apart from the
// fund/verify submission path.
type Operation struct {
	TwitterHandler  string `json:"twitterHandler"`
	OwnerAddress    string `json:"ownerAddress"`
	WalletAddress   string `json:"walletAddress"`
	TokenTransferTx string `json:"tokenTransferTx"`
}

// WhiteList is a funding quota record for one social handle.
type WhiteList struct {
	TwitterHandler string `json:"twitterHandler"`
	TotalCount     int64  `json:"totalCount"`
	UsedCount      int64  `json:"usedCount"`
}

// ProofType distinguishes how a funding proof payload was signed.
type ProofType string

const (
	// ProofTypePersona marks a payload signed with a persona key.
	ProofTypePersona ProofType = "persona"

	// ProofTypeEOA marks a payload signed with an externally-owned account.
	ProofTypeEOA ProofType = "eoa"
)

// Proof is a signed funding request submitted to the ledger's verification
// endpoint.
type Proof struct {
	PublicKey string    `json:"publicKey" validate:"required"`
	Type      ProofType `json:"type" validate:"required,oneof=persona eoa"`
	Signature string    `json:"signature" validate:"required"`
	Payload   string    `json:"payload" validate:"required"`
}

// ProofPayload is the exact JSON document the ledger expects callers to
// sign when requesting funding.
type ProofPayload struct {
	TwitterHandler string `json:"twitterHandler"`
	Timestamp      int64  `json:"ts"`
	OwnerAddress   string `json:"ownerAddress"`
	Nonce          uint32 `json:"nonce"`
}

// NewProofPayload builds a proof payload stamped with the current unix
// time.
func NewProofPayload(handle, owner string, nonce uint32) ProofPayload {
	return ProofPayload{
		TwitterHandler: handle,
		Timestamp:      time.Now().Unix(),
		OwnerAddress:   owner,
		Nonce:          nonce,
	}
}

// Encode renders the payload as the JSON string to be signed.
func (p ProofPayload) Encode() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// Fund is the ledger's response to a funding proof submission.
type Fund struct {
	WalletAddress string `json:"walletAddress"`
	TxHash        string `json:"txHash"`
	Message       string `json:"message"`
}
