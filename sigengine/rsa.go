// Package sigengine provides the signature-verification and signing
// capability the container package delegates to. It deliberately mirrors
// the shape of the teacher library's own Signer/Verifier split (see
// rsa.go in veraison/go-cose): a small struct wrapping a crypto key,
// exposing Sign/Verify methods that hash the message themselves.
//
// The concrete engine here signs with RSASSA-PKCS1-v1_5 over SHA-256,
// matching the "RSA signature in PKCS 1.5 format" wire contract the
// manifest container format was designed against.
package sigengine

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
)

// ErrVerification is returned by Verify on any signature mismatch. Callers
// of this package must not attempt to distinguish sub-causes of failure;
// the container package collapses this (and any other engine error) into
// a single SignatureFailure outcome.
var ErrVerification = errors.New("sigengine: signature verification failed")

// Verifier authenticates a signature over a message.
type Verifier interface {
	// Verify reports whether sig is a valid signature over msg. Any
	// failure, for any reason, is reported as ErrVerification.
	Verify(sig, msg []byte) error
}

// Signer produces signatures over a message, and reports the fixed byte
// length of the signatures it produces (used by the builder to reserve
// room in the output buffer before signing).
type Signer interface {
	// Sign computes a signature over msg and writes it into sigOut.
	// len(sigOut) must equal PubLen().
	Sign(sigOut, msg []byte) error
	// PubLen returns the number of bytes a signature from this Signer
	// occupies.
	PubLen() int
}

// RSAEngine is an RSA PKCS#1 v1.5 / SHA-256 signature engine. A value
// constructed with a private key implements both Signer and Verifier (via
// the key's public half); a value constructed with only a public key
// implements Verifier only — call NewVerifier for that case.
type RSAEngine struct {
	priv *rsa.PrivateKey
	pub  *rsa.PublicKey
}

// NewEngine returns an RSAEngine able to both sign and verify, backed by
// priv.
func NewEngine(priv *rsa.PrivateKey) *RSAEngine {
	return &RSAEngine{priv: priv, pub: &priv.PublicKey}
}

// NewVerifier returns an RSAEngine able only to verify, backed by pub.
func NewVerifier(pub *rsa.PublicKey) *RSAEngine {
	return &RSAEngine{pub: pub}
}

// PubLen returns the signature length in bytes: the RSA modulus size.
func (e *RSAEngine) PubLen() int {
	return (e.pub.N.BitLen() + 7) / 8
}

// Sign computes an RSA PKCS#1 v1.5 signature over the SHA-256 digest of
// msg and writes it into sigOut, which must be exactly PubLen() bytes.
func (e *RSAEngine) Sign(sigOut, msg []byte) error {
	if e.priv == nil {
		return errors.New("sigengine: engine has no private key")
	}
	if len(sigOut) != e.PubLen() {
		return errors.New("sigengine: signature buffer has wrong length")
	}
	digest := sha256.Sum256(msg)
	sig, err := rsa.SignPKCS1v15(rand.Reader, e.priv, crypto.SHA256, digest[:])
	if err != nil {
		return err
	}
	copy(sigOut, sig)
	return nil
}

// Verify checks sig against the SHA-256 digest of msg using the RSA public
// key. Any failure collapses to ErrVerification.
func (e *RSAEngine) Verify(sig, msg []byte) error {
	if e.pub == nil {
		return ErrVerification
	}
	digest := sha256.Sum256(msg)
	if err := rsa.VerifyPKCS1v15(e.pub, crypto.SHA256, digest[:], sig); err != nil {
		return ErrVerification
	}
	return nil
}
