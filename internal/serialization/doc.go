// Package serialization stores metric batches as SafeTensors files.
//
// A batch dump holds every prediction and label tensor of one training
// batch, keyed by tensor name, so that metrics can be replayed offline:
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON, tensor name -> {dtype, shape, data_offsets}]
//	  [Tensor data: raw little-endian bytes, sorted by name]
//
// The header's __metadata__ map carries free-form string metadata plus a
// SHA-256 of the data section, checked on read when present.
//
// Example usage:
//
//	err := serialization.WriteBatch("batch_0001.safetensors", tensors, map[string]string{
//	    "pipeline": "e2e",
//	})
//
//	dump, err := serialization.ReadBatch("batch_0001.safetensors")
//	probs := dump.Tensors["rpn_cls_prob"]
package serialization
