// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package secret

// Zero overwrites data with zeros in place. Use it on transient
// heap-allocated copies of secret material (key bytes read from disk,
// intermediate derived keys) that never made it into a Buffer.
func Zero(data []byte) {
	for index := range data {
		data[index] = 0
	}
}
