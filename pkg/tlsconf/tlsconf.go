// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package tlsconf builds mutual TLS configurations from a single PEM file holding the certificate chain, its
// private key and the certificates of trusted client authorities. The file might be reloaded at runtime.
package tlsconf

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/fsnotify/fsnotify"
)

// ErrNoCertificates is returned for a PEM file without any certificate.
var ErrNoCertificates = errors.New("no certificates in PEM file")

// Loader keeps the key material of a PEM file.
type Loader struct {
	path string

	mu   sync.RWMutex
	cert tls.Certificate
	pool *x509.CertPool

	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	doneChan chan struct{}
}

// Load the PEM file at the given path.
func Load(path string) (*Loader, error) {
	l := &Loader{path: path}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Reload the PEM file. On failure, the former key material stays in use.
func (l *Loader) Reload() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return err
	}

	cert, pool, err := parse(data)
	if err != nil {
		return fmt.Errorf("parsing %s failed: %w", l.path, err)
	}

	l.mu.Lock()
	l.cert, l.pool = cert, pool
	l.mu.Unlock()

	log.WithField("file", l.path).Debug("Loaded TLS key material")
	return nil
}

func parse(data []byte) (cert tls.Certificate, pool *x509.CertPool, err error) {
	if cert, err = tls.X509KeyPair(data, data); err != nil {
		return
	}

	pool = x509.NewCertPool()
	if !pool.AppendCertsFromPEM(data) {
		err = ErrNoCertificates
	}
	return
}

func (l *Loader) current() (tls.Certificate, *x509.CertPool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.cert, l.pool
}

// ServerConfig for a TLS listener. Each handshake uses the latest loaded key material. If clientAuth is set,
// clients must present a certificate signed by one of the PEM file's certificates.
func (l *Loader) ServerConfig(clientAuth bool) *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS12,
		GetConfigForClient: func(*tls.ClientHelloInfo) (*tls.Config, error) {
			cert, pool := l.current()

			conf := &tls.Config{
				MinVersion:   tls.VersionTLS12,
				Certificates: []tls.Certificate{cert},
				NextProtos:   []string{"h2"},
			}
			if clientAuth {
				conf.ClientAuth = tls.RequireAndVerifyClientCert
				conf.ClientCAs = pool
			}
			return conf, nil
		},
	}
}

// ClientConfig presents the PEM file's identity and trusts its certificates for the server.
func (l *Loader) ClientConfig(serverName string) *tls.Config {
	cert, pool := l.current()

	return &tls.Config{
		MinVersion:   tls.VersionTLS12,
		ServerName:   serverName,
		Certificates: []tls.Certificate{cert},
		RootCAs:      pool,
	}
}

// Watch the PEM file and reload it after changes until Close is called.
func (l *Loader) Watch() error {
	if l.watcher != nil {
		return errors.New("PEM file is already watched")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// The directory is watched, as files are often replaced instead of being written to.
	if err := watcher.Add(filepath.Dir(l.path)); err != nil {
		_ = watcher.Close()
		return err
	}

	l.watcher = watcher
	l.stopChan = make(chan struct{})
	l.doneChan = make(chan struct{})

	go l.handler()
	return nil
}

func (l *Loader) handler() {
	defer close(l.doneChan)

	logger := log.WithField("file", l.path)
	target := filepath.Clean(l.path)

	for {
		select {
		case <-l.stopChan:
			return

		case e, ok := <-l.watcher.Events:
			if !ok {
				logger.Error("fsnotify's Event channel was closed")
				return
			}

			if filepath.Clean(e.Name) != target || e.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if err := l.Reload(); err != nil {
				logger.WithError(err).Warn("Reloading TLS key material errored")
			} else {
				logger.WithField("operation", e.Op.String()).Info("Reloaded TLS key material")
			}

		case err, ok := <-l.watcher.Errors:
			if !ok {
				logger.Error("fsnotify's Errors channel was closed")
				return
			}

			logger.WithError(err).Warn("fsnotify errored")
		}
	}
}

// Close stops watching the PEM file.
func (l *Loader) Close() error {
	if l.watcher == nil {
		return nil
	}

	close(l.stopChan)
	<-l.doneChan

	err := l.watcher.Close()
	l.watcher = nil
	return err
}
