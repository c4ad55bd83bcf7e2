// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rebuild regenerates the prerendered static site and swaps it
into the live path without taking request serving offline.

# State machine

	Idle -> Building -> Swapping -> Idle            (success)
	Idle -> Building -> Idle                        (build failure, live untouched)
	Idle -> Building -> Swapping -> RollingBack -> Idle   (swap failure, previous site restored)

Triggers are rejected synchronously while a rebuild is running or
inside the cooldown window following the previous attempt. There is
no cancellation: an accepted rebuild runs to completion or failure.

# Swap protocol

The build writes into a staging directory beside the live one. The
swap is three renames: live -> backup, staging -> live, then deferred
removal of backup after a grace delay. Directory rename is the only
filesystem operation relied on for atomicity, so readers of the live
path always see a complete tree. If the second rename fails the backup
is renamed back; if that rollback also fails the error is escalated as
fatal (SwapError.Fatal) and pinned in the status until the next
successful rebuild.
*/
package rebuild
