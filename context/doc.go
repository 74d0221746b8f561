// Package context provides dependency injection for prompt stream services.
//
// Core types:
//   - Services: Collection of the stream, wildcard manager, and notifier
//
// Context injection functions:
//   - WithStream/Stream: Prompt stream injection
//   - WithWildcards/Wildcards: Wildcard manager injection
//   - notify.WithNotifier/notify.NotifierFromContext: Notifier injection
//
// Example usage:
//
//	services, err := context.NewServices(context.Config{
//	    Settings: settings,
//	    Expander: func(m *wildcard.Manager) stream.Expander { return myExpander{m} },
//	})
//	defer services.Close()
//	ctx := services.InjectAll(ctx)
//
//	// Later, retrieve services
//	s := context.Stream(ctx)
//	wildcards := context.Wildcards(ctx)
package context
