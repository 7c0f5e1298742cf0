// Package params holds the small set of constants that pin the ledger's
// wire format and consensus difficulty. These values are deliberately
// trivial — this is a demo-grade permissioned ledger, not a production
// chain (see the Non-goals in the design docs).
package params

const (
	// MiningVoter is the reserved voter literal for coinbase votes.
	MiningVoter = "MINING"

	// MiningReward is the amount credited to a miner's coinbase vote.
	MiningReward = 1

	// PoWDifficultyPrefix is the hex prefix a proof-of-work hash must
	// begin with to be accepted. Two nibbles keeps mining near-instant,
	// which is the point: this harness tests chain logic, not hash rate.
	PoWDifficultyPrefix = "00"

	// DefaultPort is used when the CLI is not given an explicit port.
	DefaultPort = 8900

	// RSAKeyBits is the RSA modulus size used for ballots. 1024 bits is
	// below any production recommendation; it is kept to match this
	// system's demo-grade crypto posture.
	RSAKeyBits = 1024
)
