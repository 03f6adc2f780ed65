// Package comm provides the inter-agent coordination stack: prioritized
// messages, an in-process publish/subscribe bus, a bounded audit log and the
// coordinator that binds agent roles to live instances. It defines:
//
//   - Message and its typed constructors (situation updates, dispatch
//     updates, status updates, emergency escalations)
//   - Bus / EmergencyBus (role-addressed fan-out with priority buckets and
//     event listeners, full chronological history)
//   - EventLog (bounded in-memory audit trail with display formatting)
//   - Coordinator (role registration plus delivery bookkeeping)
//   - VictimTools / OperatorTools (tool.Provider implementations that let
//     agents publish coordination messages through the reasoning loop)
//
// Delivery is synchronous and in-process: Publish returns only after every
// listener and subscriber has run. Handlers must therefore be fast and must
// never publish back into the bus from the delivery path.
package comm
