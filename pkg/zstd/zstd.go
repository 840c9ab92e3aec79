// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package zstd registers a Zstandard compressor for gRPC. Importing this package is enough to accept zstd
// compressed calls; clients select it by the grpc.UseCompressor(zstd.Name) call option.
package zstd

import (
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"google.golang.org/grpc/encoding"
)

// Name of the compressor, as announced in the grpc-encoding header.
const Name = "zstd"

func init() {
	encoding.RegisterCompressor(&compressor{})
}

type compressor struct {
	encoders sync.Pool
	decoders sync.Pool
}

func (c *compressor) Name() string {
	return Name
}

func (c *compressor) Compress(w io.Writer) (io.WriteCloser, error) {
	if enc, ok := c.encoders.Get().(*writer); ok {
		enc.Reset(w)
		return enc, nil
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return &writer{Encoder: enc, pool: &c.encoders}, nil
}

func (c *compressor) Decompress(r io.Reader) (io.Reader, error) {
	if dec, ok := c.decoders.Get().(*reader); ok {
		if err := dec.Reset(r); err != nil {
			c.decoders.Put(dec)
			return nil, err
		}
		return dec, nil
	}

	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return &reader{Decoder: dec, pool: &c.decoders}, nil
}

// writer returns its Encoder to the pool after the message was flushed.
type writer struct {
	*zstd.Encoder
	pool *sync.Pool
}

func (w *writer) Close() error {
	defer w.pool.Put(w)
	return w.Encoder.Close()
}

// reader returns its Decoder to the pool after the message was read completely.
type reader struct {
	*zstd.Decoder
	pool *sync.Pool
}

func (r *reader) Read(p []byte) (n int, err error) {
	n, err = r.Decoder.Read(p)
	if err == io.EOF {
		r.pool.Put(r)
	}
	return
}
