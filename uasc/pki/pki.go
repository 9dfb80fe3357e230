// Package pki supplies the minimal certificate material a secure
// channel handshake needs: the application instance certificate the
// client presents, and the CertificateStore interface it validates
// the server's certificate against. The on-disk directory layout
// (own/trusted/rejected) is one reference implementation of that
// interface; callers needing OS/HSM-backed stores can supply their
// own.
package pki

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ErrCertificateRejected is returned by ValidateRemoteCertificate for a
// certificate whose DER bytes match no file in the store's trusted
// directory; the certificate chain is not validated.
var ErrCertificateRejected = errors.New("pki: remote certificate not trusted")

// ApplicationCertificate bundles an application instance certificate
// with its private key, ready to present in an OPN handshake.
type ApplicationCertificate struct {
	Certificate *x509.Certificate
	DER         []byte
	PrivateKey  *rsa.PrivateKey
}

// Thumbprint returns the SHA-1 thumbprint the AsymmetricSecurityHeader
// uses to name which certificate a message is encrypted for.
func (a *ApplicationCertificate) Thumbprint() []byte {
	sum := sha1.Sum(a.DER)
	return sum[:]
}

// GenerateSelfSigned creates a 2048-bit RSA application instance
// certificate with the subject DN "CN=<application-name>,DC=<host-name>"
// and the application URI as a URI: SAN entry.
func GenerateSelfSigned(applicationName, hostName, applicationURI string) (*ApplicationCertificate, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("pki: generate key: %w", err)
	}
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, fmt.Errorf("pki: generate serial: %w", err)
	}
	if _, err := url.Parse(applicationURI); err != nil {
		return nil, fmt.Errorf("pki: application URI %q is not a valid URI: %w", applicationURI, err)
	}

	tmpl := &x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			CommonName:         applicationName,
			DomainComponent:    []string{hostName},
		},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().AddDate(5, 0, 0),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment | x509.KeyUsageDataEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
		BasicConstraintsValid: true,
		URIs:                  mustParseURIs(applicationURI),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		return nil, fmt.Errorf("pki: create certificate: %w", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, err
	}
	return &ApplicationCertificate{Certificate: cert, DER: der, PrivateKey: key}, nil
}

func mustParseURIs(s string) []*url.URL {
	u, err := url.Parse(s)
	if err != nil {
		return nil
	}
	return []*url.URL{u}
}

// CertificateStore validates a remote certificate chain presented
// during the OPN handshake. Implementations are assumed thread-safe
// and side-effect-free for ValidateRemoteCertificate
type CertificateStore interface {
	// Own returns the application's own certificate and private key.
	Own() (*ApplicationCertificate, error)
	// ValidateRemoteCertificate reports whether cert is trusted. A
	// rejected certificate is moved into the store's quarantine for
	// operator review by implementations that persist one.
	ValidateRemoteCertificate(cert *x509.Certificate) error
}

// DirectoryStore is the reference CertificateStore backed by the
// three directories names: own/, trusted/, rejected/.
// First-use self-signed generation populates own/ automatically.
type DirectoryStore struct {
	Root            string
	ApplicationName string
	HostName        string
	ApplicationURI  string
}

func (s *DirectoryStore) ownPath() string      { return filepath.Join(s.Root, "own", "cert.der") }
func (s *DirectoryStore) ownKeyPath() string   { return filepath.Join(s.Root, "own", "key.der") }
func (s *DirectoryStore) trustedDir() string   { return filepath.Join(s.Root, "trusted") }
func (s *DirectoryStore) rejectedDir() string  { return filepath.Join(s.Root, "rejected") }

// Own loads the own/ certificate, generating and persisting a fresh
// self-signed one on first use.
func (s *DirectoryStore) Own() (*ApplicationCertificate, error) {
	der, derErr := os.ReadFile(s.ownPath())
	keyDER, keyErr := os.ReadFile(s.ownKeyPath())
	if derErr == nil && keyErr == nil {
		cert, err := x509.ParseCertificate(der)
		if err != nil {
			return nil, err
		}
		key, err := x509.ParsePKCS1PrivateKey(keyDER)
		if err != nil {
			return nil, err
		}
		return &ApplicationCertificate{Certificate: cert, DER: der, PrivateKey: key}, nil
	}

	name := s.ApplicationName
	if name == "" {
		name = "opcua-client-" + uuid.NewString()
	}
	ac, err := GenerateSelfSigned(name, s.HostName, s.ApplicationURI)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(s.Root, "own"), 0o700); err != nil {
		return nil, err
	}
	if err := os.WriteFile(s.ownPath(), ac.DER, 0o600); err != nil {
		return nil, err
	}
	if err := os.WriteFile(s.ownKeyPath(), x509.MarshalPKCS1PrivateKey(ac.PrivateKey), 0o600); err != nil {
		return nil, err
	}
	return ac, nil
}

// ValidateRemoteCertificate accepts cert if its DER bytes match a file
// already present in trusted/, and otherwise copies it into rejected/
// for an operator to promote by hand.
func (s *DirectoryStore) ValidateRemoteCertificate(cert *x509.Certificate) error {
	entries, err := os.ReadDir(s.trustedDir())
	if err == nil {
		for _, e := range entries {
			trusted, err := os.ReadFile(filepath.Join(s.trustedDir(), e.Name()))
			if err != nil {
				continue
			}
			if string(trusted) == string(cert.Raw) {
				return nil
			}
		}
	}
	if err := os.MkdirAll(s.rejectedDir(), 0o700); err == nil {
		thumb := sha1.Sum(cert.Raw)
		_ = os.WriteFile(filepath.Join(s.rejectedDir(), fmt.Sprintf("%x.der", thumb)), cert.Raw, 0o600)
	}
	return ErrCertificateRejected
}
