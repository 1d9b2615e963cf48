package types

// Server -> Client
// roomCreated:
//   roomId: string
//
// roomJoined:
//   roomId: string
//
// errorEvent:
//   message: string
//   statusCode: number   // 400 | 403 | 404 | 409
//
// userJoined:
//   clientId: string
//   displayName: string
//
// userLeft:
//   clientId: string
//   displayName: string
//
// initiateCall: {}       // sent to the earliest member when a second joins
//
// roomClosed:
//   roomId: string       // the host left; no further relays for this room
//
// offer / answer / iceCandidate (relayed):
//   from: string         // sender's client id
//   offer | answer | candidate: as sent
//
// receiveMessage:
//   message: string
//   senderId: string     // echoed to the sender as well
