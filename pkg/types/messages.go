package types

// Every socket message, both directions, is wrapped in an envelope:
//   { "event": string, "data": object }
//
// Client -> Server
// createRoom:
//   roomId: string       // case-sensitive, must not be live yet
//   displayName: string
//
// joinRoom:
//   roomId: string
//   displayName: string
//
// offer:
//   roomId: string
//   offer: RTCSessionDescription
//
// answer:
//   roomId: string       // optional under the peer policy
//   targetId: string     // required under the host policy
//   answer: RTCSessionDescription
//
// iceCandidate:
//   roomId: string
//   candidate: RTCIceCandidate
//
// chatMessage:
//   roomId: string
//   message: string
