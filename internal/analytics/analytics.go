// Package analytics is the event client the sample drives: it keeps the
// identity of the current user, queues identify, track and screen messages,
// delivers them to a data plane in batches and forwards them to device-mode
// integrations such as Sprig.
//
// Basic usage:
//
//	cfg, err := analytics.NewConfigBuilder().
//	    WithDataPlaneURL("https://dataplane.example.com").
//	    Build()
//	if err != nil {
//	    return err
//	}
//	client, err := analytics.New(writeKey, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.Track("document_created", analytics.NewProperties().PutValue("pages", 3))
package analytics

// Version is the client version reported in message context.
const Version = "0.1.0"
