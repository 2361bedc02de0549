package firebase

import "testing"

func TestCloseWithNilClients(t *testing.T) {
	c := &Clients{}
	if err := c.Close(); err != nil {
		t.Fatalf("Close with nil clients should be a no-op, got %v", err)
	}
}
