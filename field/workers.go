// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import "runtime"

// runtimeNumCPU reports the goroutine fan-out available to the
// intermonomer phases, mirroring omp_get_num_threads() in the source
// this package is grounded on.
func runtimeNumCPU() int { return runtime.GOMAXPROCS(0) }
