// Package serialization saves and loads named tensors in the SafeTensors
// format, the layout used by HuggingFace model hubs:
//
//	[8 bytes: header size (uint64 LE)]
//	[header: JSON, name -> {dtype, shape, data_offsets}, optional __metadata__]
//	[data: raw little-endian element bytes, tensors in name order]
//
// Example usage:
//
//	err := serialization.WriteFile("batch.safetensors", map[string]*tensor.Tensor{
//	    "image_000": x,
//	}, map[string]string{"image_000": "cat.png"})
//
//	f, err := serialization.ReadFile("batch.safetensors")
//	defer f.Release()
//	x := f.Tensors["image_000"]
package serialization
