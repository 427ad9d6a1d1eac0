package tlsconfig

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeSelfSigned writes a self-signed certificate and key into dir and
// returns their paths. The certificate doubles as its own CA.
func writeSelfSigned(t *testing.T, dir string) (certFile, keyFile string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "crate-monitor"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}

	certFile = filepath.Join(dir, "cert.pem")
	keyFile = filepath.Join(dir, "key.pem")
	if err := os.WriteFile(certFile, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600); err != nil {
		t.Fatalf("write cert: %v", err)
	}
	if err := os.WriteFile(keyFile, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}
	return certFile, keyFile
}

func TestLoadServerTLS(t *testing.T) {
	certFile, keyFile := writeSelfSigned(t, t.TempDir())

	tests := []struct {
		name       string
		caFile     string
		clientAuth tls.ClientAuthType
	}{
		{name: "server only", caFile: "", clientAuth: tls.NoClientCert},
		{name: "mutual", caFile: certFile, clientAuth: tls.RequireAndVerifyClientCert},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadServerTLS(certFile, keyFile, tt.caFile)
			if err != nil {
				t.Fatalf("LoadServerTLS failed: %v", err)
			}
			if cfg.ClientAuth != tt.clientAuth {
				t.Errorf("ClientAuth = %v, want %v", cfg.ClientAuth, tt.clientAuth)
			}
			if len(cfg.Certificates) != 1 {
				t.Errorf("expected 1 certificate, got %d", len(cfg.Certificates))
			}
		})
	}
}

func TestLoadClientTLS(t *testing.T) {
	certFile, keyFile := writeSelfSigned(t, t.TempDir())

	cfg, err := LoadClientTLS(certFile, keyFile, certFile)
	if err != nil {
		t.Fatalf("LoadClientTLS failed: %v", err)
	}
	if cfg.RootCAs == nil {
		t.Error("expected RootCAs to be set")
	}
}

func TestLoadServerTLS_BadCA(t *testing.T) {
	dir := t.TempDir()
	certFile, keyFile := writeSelfSigned(t, dir)

	bogus := filepath.Join(dir, "ca.pem")
	if err := os.WriteFile(bogus, []byte("not a certificate"), 0o600); err != nil {
		t.Fatalf("write CA: %v", err)
	}

	if _, err := LoadServerTLS(certFile, keyFile, bogus); err == nil {
		t.Error("expected error for unparsable CA")
	}
	if _, err := LoadServerTLS(certFile, keyFile, filepath.Join(dir, "missing.pem")); err == nil {
		t.Error("expected error for missing CA")
	}
}
