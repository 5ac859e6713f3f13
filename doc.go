// package waiter provides blocking primitives for request/response correlation.
//
// Consider an RPC client that multiplexes many in-flight requests over one
// connection. Responses arrive out of order, tagged with the request id of
// the call they answer, and each one must wake exactly the caller that is
// blocked on it. A WaiterMap does that routing:
//
//	var pending waiter.WaiterMap[uint64, []byte]
//
//	func call(conn net.Conn, id uint64, req []byte) ([]byte, error) {
//		w, err := pending.NewWaiter(id)
//		if err != nil {
//			return nil, err
//		}
//		if _, err := conn.Write(req); err != nil {
//			return nil, err
//		}
//		return w.WaitRspTimeout(5 * time.Second)
//	}
//
//	func readLoop(conn net.Conn) {
//		for {
//			id, rsp := readFrame(conn)
//			pending.SetRsp(id, rsp) // ErrNoSuchWaiter for late responses
//		}
//	}
//
// When the protocol has no natural request id, a TokenSlab mints one: Alloc
// returns a compact Token together with the waiter bound to it, the token is
// threaded through the protocol in place of a key, and Deliver routes the
// response back. Tokens carry a per-slot generation, so a token that already
// resolved, timed out, or was cancelled can never deliver into a slot's next
// occupant.
//
// Both front ends share the same single-slot rendezvous underneath: one
// value in, one waiter out, delivered at most once. Whichever of delivery,
// timeout, and cancellation happens first is the outcome both sides observe;
// the loser gets an error return, never a lost or doubled value.
package waiter
