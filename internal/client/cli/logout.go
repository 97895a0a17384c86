package cli

import "context"

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.session.Logout(ctx); err != nil {
		return err
	}
	c.feed.ClearCache(ctx)
	c.io.Println("Signed out. Local session and cached data cleared.")
	return nil
}
