package navigation

import "sync"

// maxHops bounds redirect chains so a misconfigured table cannot loop.
const maxHops = 8

// Navigator tracks the client's current location and follows redirects.
type Navigator struct {
	mu      sync.Mutex
	auth    *Authorizer
	current Location
}

// NewNavigator returns a Navigator positioned at the authorizer's home.
func NewNavigator(auth *Authorizer) *Navigator {
	return &Navigator{auth: auth, current: Location{Path: auth.Home()}}
}

// Current returns the last location navigation settled on.
func (n *Navigator) Current() Location {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Go requests loc, follows redirects and returns the final decision. The
// current location becomes the rendered (or denied) one.
func (n *Navigator) Go(loc Location) Decision {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.follow(loc)
}

// AfterLogin resumes the destination recorded on the current location.
func (n *Navigator) AfterLogin() Decision {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.follow(n.auth.Resume(n.current))
}

func (n *Navigator) follow(loc Location) Decision {
	d := n.auth.Authorize(loc)
	for hops := 0; d.Outcome == Redirect && hops < maxHops; hops++ {
		d = n.auth.Authorize(d.Location)
	}
	n.current = d.Location
	return d
}
