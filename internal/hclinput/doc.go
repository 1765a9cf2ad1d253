// Package hclinput reads HCL input files into a block tree.
//
// Every HCL block becomes a block of the tree. Block labels are treated as
// nested block names, so the two forms below produce the same tree:
//
//	Kernels "diff" {
//	  type = "Diffusion"
//	}
//
//	Kernels {
//	  diff {
//	    type = "Diffusion"
//	  }
//	}
//
// Attribute values must be literals: variables and function calls are
// rejected by evaluating each expression with a nil evaluation context.
package hclinput
