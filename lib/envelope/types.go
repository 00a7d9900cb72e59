// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import "github.com/kakobtg/ChainOfProducts-project/lib/canon"

// Version is the only envelope format this implementation produces or
// accepts.
const Version = "cop/1"

// WrapInfo is the HKDF info string binding every key-wrap derivation
// to this protocol and version, independent of the key being wrapped
// (content key or group key) or the recipient.
const WrapInfo = "cop/wrap/v1"

// WrappedKey is a 32-byte key (content key or group key) encrypted to
// one recipient's long-term X25519 encryption public key via
// ephemeral-ECDH + HKDF + AEAD. Field order matches the lexicographic
// order of the json tags.
type WrappedKey struct {
	Ciphertext      canon.Bytes `json:"ct"`
	EphemeralPublic canon.Bytes `json:"eph_pub"`
	RecipientName   string      `json:"name"`
	Nonce           canon.Bytes `json:"nonce"`
}

// GroupWrapSet is one group's share of a Protect call: the group key
// wrapped for every member of the snapshot taken at protect-time.
type GroupWrapSet struct {
	GroupID        string       `json:"group_id"`
	MemberSnapshot []string     `json:"members"`
	Wraps          []WrappedKey `json:"wraps"`
}

// SigningInput is every Envelope field except the signatures. The
// seller and (if present) buyer signature both cover the canonical
// serialization of exactly this struct.
type SigningInput struct {
	Buyer             string         `json:"buyer"`
	ContentCiphertext canon.Bytes    `json:"content_ct"`
	ContentHash       canon.Bytes    `json:"content_hash"`
	ContentNonce      canon.Bytes    `json:"content_nonce"`
	DirectRecipients  []WrappedKey   `json:"direct_recipients"`
	GroupRecipients   []GroupWrapSet `json:"group_recipients"`
	Seller            string         `json:"seller"`
	TxID              canon.Bytes    `json:"tx_id"`
	Version           string         `json:"version"`
}

// ShareKind distinguishes a direct disclosure from a group disclosure
// in a ShareRecord.
type ShareKind string

const (
	ShareDirect ShareKind = "direct"
	ShareGroup  ShareKind = "group"
)

// ShareRecordBody is every ShareRecord field except its signature.
// sharer_signature is computed over sha256(canon.Marshal(body)).
type ShareRecordBody struct {
	DisclosedTo string      `json:"disclosed_to"`
	Kind        ShareKind   `json:"kind"`
	Sharer      string      `json:"sharer"`
	Timestamp   string      `json:"timestamp"`
	TxID        canon.Bytes `json:"tx_id"`
}

// ShareRecord is a signed disclosure receipt: sharer X attests that it
// disclosed the transaction to disclosed_to (a party name for
// ShareDirect, a group id for ShareGroup) at Timestamp.
type ShareRecord struct {
	DisclosedTo string      `json:"disclosed_to"`
	Kind        ShareKind   `json:"kind"`
	Sharer      string      `json:"sharer"`
	Signature   canon.Bytes `json:"sig"`
	Timestamp   string      `json:"timestamp"`
	TxID        canon.Bytes `json:"tx_id"`
}

// Body strips the signature, returning the struct the signature
// covers (after hashing via sha256 and canonical serialization).
func (s ShareRecord) Body() ShareRecordBody {
	return ShareRecordBody{
		DisclosedTo: s.DisclosedTo,
		Kind:        s.Kind,
		Sharer:      s.Sharer,
		Timestamp:   s.Timestamp,
		TxID:        s.TxID,
	}
}

// Addendum is a post-Protect appendix: a wrap for a newly-disclosed
// recipient (or group) together with the ShareRecord that authenticates
// it. Addenda are not covered by seller_sig — each is authenticated
// individually via ShareRecord.Signature.
type Addendum struct {
	ShareRecord ShareRecord  `json:"share_record"`
	Wrap        *WrappedKey  `json:"wrap,omitempty"`
	GroupWrap   *GroupWrapSet `json:"group_wrap,omitempty"`
}

// Envelope is the full protected-document structure produced by
// Protect and grown by subsequent BuyerSign and addendum operations.
type Envelope struct {
	Addenda           []Addendum     `json:"addenda,omitempty"`
	Buyer             string         `json:"buyer"`
	BuyerSignature    canon.Bytes    `json:"buyer_sig,omitempty"`
	ContentCiphertext canon.Bytes    `json:"content_ct"`
	ContentHash       canon.Bytes    `json:"content_hash"`
	ContentNonce      canon.Bytes    `json:"content_nonce"`
	DirectRecipients  []WrappedKey   `json:"direct_recipients"`
	GroupRecipients   []GroupWrapSet `json:"group_recipients"`
	Seller            string         `json:"seller"`
	SellerSignature   canon.Bytes    `json:"seller_sig"`
	TxID              canon.Bytes    `json:"tx_id"`
	Version           string         `json:"version"`
}

// SigningInput extracts the fields covered by seller_sig/buyer_sig
// from e. Re-deriving it from a received Envelope (rather than
// trusting a transmitted copy) is what makes signature verification
// meaningful.
func (e Envelope) SigningInput() SigningInput {
	return SigningInput{
		Buyer:             e.Buyer,
		ContentCiphertext: e.ContentCiphertext,
		ContentHash:       e.ContentHash,
		ContentNonce:      e.ContentNonce,
		DirectRecipients:  e.DirectRecipients,
		GroupRecipients:   e.GroupRecipients,
		Seller:            e.Seller,
		TxID:              e.TxID,
		Version:           e.Version,
	}
}
