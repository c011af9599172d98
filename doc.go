// Package filepool provides a file-backed resource pool shared between
// independent operating-system processes. It allows multiple processes
// to share a finite set of named resources (GPU slots, license seats,
// ports) using nothing but a plain text file on a common filesystem —
// no daemon, no database, no shared memory.
//
// The table is a text file with one resource per line. The first byte
// of each line is the status marker (' ' free, '!' claimed) and the
// rest is the resource name. All mutations happen under a whole-file
// advisory write lock and rewrite only the single status byte in
// place, so concurrent processes can never corrupt the table or hand
// out the same resource twice.
//
// Basic usage:
//
//	pool, err := filepool.New(filepool.Config{Path: "/dev/shm/gpus"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := pool.Create([]string{"gpu0", "gpu1", "gpu2"}); err != nil {
//		log.Fatal(err)
//	}
//
//	// Acquire a resource, polling until one frees up.
//	resource, err := pool.Acquire(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer resource.Close() // or defer resource.Release(ctx)
//
//	fmt.Printf("using %s\n", resource.Name())
//
// Acquisition scans the table from the start and claims the first free
// record, so allocation order is deterministic for a fixed table but
// not FIFO-fair between contending processes. When no resource is
// free, Acquire sleeps for the poll interval and retries until the
// configured timeout is exhausted.
//
// A release can be deferred with ReleaseAfter, which returns as soon
// as the background task is started. Failures inside a deferred
// release are logged but cannot be reported to the caller; delayed
// releases are fire-and-forget.
//
// Put the table on a RAM-backed filesystem such as /dev/shm when it is
// accessed heavily.
package filepool
