// Package discovery provides mDNS-based discovery of research services.
//
// Research services are advertised under the "_research-agent._tcp" service
// type. The service itself does not advertise, so a host running one uses
// Announce (the CLI's "announce" command) to publish it.
//
// # Discovery Process
//
//  1. Broadcasts mDNS queries on the local network
//  2. Listens for "_research-agent._tcp" advertisements
//  3. Collects instance name, address, port and TXT metadata
//  4. Returns the services seen before the timeout, sorted by instance
//
// # Usage Example
//
//	scanner := discovery.NewScanner()
//	scanner.Timeout = 3 * time.Second
//
//	services, err := scanner.Scan(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, svc := range services {
//	    fmt.Printf("Found: %s at %s\n", svc.Instance, svc.BaseURL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Services must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
