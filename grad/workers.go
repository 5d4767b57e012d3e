// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grad

import "runtime"

// numWorkers returns the goroutine fan-out for an intermonomer pass,
// mirroring field.numWorkers / the source's omp_get_num_threads().
func numWorkers() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}
	return n
}
