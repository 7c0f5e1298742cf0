// Package ballot implements vote authorship: key generation, signing, and
// signature verification. RSA-1024 with PKCS#1 v1.5 over SHA-256 is pinned
// by the design (demo-grade, see params.RSAKeyBits) — no elliptic-curve or
// BLS library in this project's dependency stack fits that primitive, so
// this package is built directly on crypto/rsa and crypto/x509.
package ballot

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/equa/votenode/params"
	"github.com/equa/votenode/vote"
)

// ErrKeysNotSet describes a ballot whose own keypair has been neither
// generated nor loaded. No function in this package returns it.
var ErrKeysNotSet = errors.New("ballot: keys not set")

// Ballot holds (and can generate) one node's own RSA keypair. It is also
// the home for the static-like signature operations used by the rest of
// the ledger (SignVote, VerifyVote) even when they operate on a third party's
// keys rather than this ballot's own.
type Ballot struct {
	NodeID     string
	PublicKey  string // hex-encoded PKCS#1 DER
	PrivateKey string // hex-encoded PKCS#1 DER
}

// New returns an empty ballot scoped to nodeID; call CreateKeys or set the
// fields directly (e.g. after loading) before signing.
func New(nodeID string) *Ballot {
	return &Ballot{NodeID: nodeID}
}

// GenerateKeys creates a fresh RSA keypair and returns it hex-encoded,
// without mutating the receiver.
func GenerateKeys() (privHex, pubHex string, err error) {
	priv, err := rsa.GenerateKey(rand.Reader, params.RSAKeyBits)
	if err != nil {
		return "", "", fmt.Errorf("generate keys: %w", err)
	}
	privDER := x509.MarshalPKCS1PrivateKey(priv)
	pubDER := x509.MarshalPKCS1PublicKey(&priv.PublicKey)
	return hex.EncodeToString(privDER), hex.EncodeToString(pubDER), nil
}

// CreateKeys generates a new keypair and stores it on the receiver.
func (b *Ballot) CreateKeys() error {
	priv, pub, err := GenerateKeys()
	if err != nil {
		return err
	}
	b.PrivateKey = priv
	b.PublicKey = pub
	return nil
}

// SignVote signs the canonical payload voter||candidate||amount with
// voterPriv and returns the hex-encoded signature.
func SignVote(voterPub, voterPriv, candidate string, amount int64) (string, error) {
	privDER, err := hex.DecodeString(voterPriv)
	if err != nil {
		return "", fmt.Errorf("decode private key: %w", err)
	}
	priv, err := x509.ParsePKCS1PrivateKey(privDER)
	if err != nil {
		return "", fmt.Errorf("parse private key: %w", err)
	}
	payload := (vote.Vote{Voter: voterPub, Candidate: candidate, Amount: amount}).SignedPayload()
	digest := sha256.Sum256([]byte(payload))
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA256, digest[:])
	if err != nil {
		return "", fmt.Errorf("sign: %w", err)
	}
	return hex.EncodeToString(sig), nil
}

// VerifyVote verifies v's signature against the public key stated in
// v.Voter. It returns false on any decode or verification failure — never
// an error — matching the fail-closed contract the rest of the ledger
// relies on. A MINING vote is not checked against any key: it is accepted
// if and only if its signature is empty (the ledger is the only thing that
// appends one, and only as the last entry of a block it just mined).
func VerifyVote(v vote.Vote) bool {
	if v.IsMining() {
		return v.Signature == ""
	}
	pubDER, err := hex.DecodeString(v.Voter)
	if err != nil {
		return false
	}
	pub, err := x509.ParsePKCS1PublicKey(pubDER)
	if err != nil {
		return false
	}
	sig, err := hex.DecodeString(v.Signature)
	if err != nil {
		return false
	}
	digest := sha256.Sum256([]byte(v.SignedPayload()))
	return rsa.VerifyPKCS1v15(pub, crypto.SHA256, digest[:], sig) == nil
}
