/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package tlsconf assembles a *tls.Config from PEM-encoded root CA,
// client certificate/key pairs and a passphrase, in the style of
// golib/certificates -- trimmed to the materials the HTTP(S) probe
// (spec.md §4.2) needs: ca, cert, key, passphrase and strictSSL.
package tlsconf

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	liberr "github.com/nabbar/wait-on/internal/liberr"
)

// Error codes for this package, following the MinPkgTLSConf range.
const (
	ErrRootCA liberr.CodeError = iota + liberr.MinPkgTLSConf
	ErrCertPair
	ErrKeyDecrypt
)

func init() {
	if liberr.ExistInMapMessage(ErrRootCA) {
		panic(fmt.Errorf("liberr: code range collision in tlsconf"))
	}
	liberr.RegisterIdFctMessage(ErrRootCA, message)
}

func message(code liberr.CodeError) string {
	switch code {
	case ErrRootCA:
		return "invalid root CA material"
	case ErrCertPair:
		return "invalid client certificate/key pair"
	case ErrKeyDecrypt:
		return "failed to decrypt private key with the given passphrase"
	}
	return ""
}

// Material holds the raw PEM inputs an HTTP(S) probe may be configured
// with (spec.md §3's ca/cert/key/passphrase knobs).
type Material struct {
	// CA is zero or more PEM-encoded root certificates to trust in
	// addition to the system pool.
	CA []string

	// Cert and Key are a PEM-encoded client certificate/key pair used for
	// mutual TLS. Both must be set together or not at all.
	Cert string
	Key  string

	// Passphrase decrypts an encrypted PEM private key, when non-empty.
	Passphrase string

	// StrictSSL, when false (the spec.md §3 default), disables server
	// certificate verification -- the opposite polarity of Go's own
	// InsecureSkipVerify, matching the CLI knob's naming.
	StrictSSL bool
}

// Build renders a *tls.Config from m. A zero-value Material produces a
// config equivalent to Go's http.DefaultTransport default, except that
// StrictSSL defaults to false (so InsecureSkipVerify defaults to true) per
// spec.md §3.
func Build(m Material) (*tls.Config, liberr.Error) {
	cfg := &tls.Config{
		InsecureSkipVerify: !m.StrictSSL, //nolint:gosec // spec.md §3: strictSSL defaults to false
	}

	if len(m.CA) > 0 {
		pool := x509.NewCertPool()
		for _, ca := range m.CA {
			if !pool.AppendCertsFromPEM([]byte(ca)) {
				return nil, ErrRootCA.ErrorParent(fmt.Errorf("unable to parse PEM root CA"))
			}
		}
		cfg.RootCAs = pool
	}

	if m.Cert != "" || m.Key != "" {
		keyPEM := []byte(m.Key)

		if m.Passphrase != "" {
			decoded, err := decryptKey(keyPEM, m.Passphrase)
			if err != nil {
				return nil, ErrKeyDecrypt.ErrorParent(err)
			}
			keyPEM = decoded
		}

		pair, err := tls.X509KeyPair([]byte(m.Cert), keyPEM)
		if err != nil {
			return nil, ErrCertPair.ErrorParent(err)
		}
		cfg.Certificates = []tls.Certificate{pair}
	}

	return cfg, nil
}

// decryptKey decrypts an RFC 1423 encrypted PEM private key block.
//
//nolint:staticcheck // x509.DecryptPEMBlock is deprecated but there is no
// stdlib replacement for classic passphrase-protected PEM keys; golib's
// certificates package carries the same dependency on it.
func decryptKey(keyPEM []byte, passphrase string) ([]byte, error) {
	block, _ := pem.Decode(keyPEM)
	if block == nil {
		return nil, fmt.Errorf("tlsconf: no PEM block found in private key")
	}

	if !x509.IsEncryptedPEMBlock(block) {
		return keyPEM, nil
	}

	der, err := x509.DecryptPEMBlock(block, []byte(passphrase))
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(&pem.Block{Type: block.Type, Bytes: der}), nil
}
