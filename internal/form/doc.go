// Package form holds the research form state and drives the request
// lifecycle.
//
// A Controller stores the five user inputs and moves through four phases:
//
//	Idle -> InFlight -> Succeeded(result) | Failed(message)
//
// Submitting is allowed from any phase, including InFlight. Each submission
// gets a Ticket; when several are outstanding, resolutions are applied in
// the order they arrive, so the last one to arrive is what the user sees.
// WithPolicy(DiscardStale) switches to ignoring resolutions for anything but
// the newest ticket.
//
// Numeric inputs that do not parse are kept as not-a-number and sent to the
// service as null. Validate reports them, but Submit never blocks on it.
//
// Interactive front ends call Begin and Resolve from their event loop; batch
// callers use Submit:
//
//	c := form.NewController()
//	c.UpdateField(form.FieldCredential, apiKey)
//	c.UpdateField(form.FieldTopic, "Remote work")
//	c.UpdateField(form.FieldTargetDemographic, "Office workers")
//
//	switch p := c.Submit(ctx, client).(type) {
//	case form.Succeeded:
//	    view, _ := c.View()
//	    fmt.Print(view.Text())
//	case form.Failed:
//	    fmt.Println(p.Message)
//	}
package form
