// Package keygen generates RSA key pairs for SSH administrative access.
//
// When no SSH key is configured, the provisioner generates one per cluster
// and uploads the public half to the cloud project; the private half is
// written next to the profile so operators can reach brokers on port 22.
package keygen

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"golang.org/x/crypto/ssh"
)

// KeyPair holds an RSA key pair in ready-to-use formats.
type KeyPair struct {
	// PrivateKey is PEM-encoded PKCS#1.
	PrivateKey []byte
	// PublicKey is in OpenSSH authorized_keys format.
	PublicKey []byte
}

// GenerateRSAKeyPair generates an RSA key pair with the given bit size.
func GenerateRSAKeyPair(bits int) (*KeyPair, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA private key: %w", err)
	}
	if err := privateKey.Validate(); err != nil {
		return nil, fmt.Errorf("generated RSA key failed validation: %w", err)
	}

	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})

	sshPub, err := ssh.NewPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to derive SSH public key: %w", err)
	}

	return &KeyPair{
		PrivateKey: privPEM,
		PublicKey:  ssh.MarshalAuthorizedKey(sshPub),
	}, nil
}
