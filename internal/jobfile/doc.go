// Package jobfile is the HCL implementation of config.Loader.
//
// A job file declares one or more `diagram` blocks:
//
//	diagram "iron_copper" {
//	  elements      = ["Fe", "Cu"]
//	  composition   = { Fe = 0.3, Cu = 0.7 }
//	  concentration = 1e-6
//	  filter_solids = true
//	  output        = "alloy.png"
//
//	  window {
//	    ph_min = 0
//	    ph_max = 14
//	    v_min  = -2
//	    v_max  = 2
//	  }
//	}
//
// Only the label and `elements` are required; everything else falls back to
// the run defaults. Pointing the loader at a directory merges the diagrams of
// every .hcl file found recursively beneath it.
package jobfile
