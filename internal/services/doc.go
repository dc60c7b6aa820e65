// Package services defines the [Resolver] and [Player] interfaces for the two
// external collaborators and implements both HTTP clients.
//
// # Catalog Resolver
//
// [TidalService] talks to api.tidal.com/v1 with OAuth2 bearer tokens. The
// [oauth2] client refreshes expired access tokens from the refresh token
// transparently. Collection listings are paginated; playlist items arrive
// wrapped in an "item" envelope while album items are inline, and both shapes
// are normalized to [models.Track] before they leave this package.
//
// # Authorization
//
// [DeviceFlow] runs the device authorization grant: the user visits a
// verification URL while the flow polls the token endpoint. The wait is
// bounded at [AuthWindow]; a single result is delivered on a channel that is
// closed afterwards. The authorization-code flow for the local callback server
// is exposed through [SessionHolder.OAuthConfig].
//
// # Playback
//
// [AudioService] submits queue work to the external audio backend over HTTP.
// The backend performs the actual search and queuing; this package never
// inspects what happens to a query after submission.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrNotAuthenticated] : no session token installed
//   - [shared.ErrTokenExpired] : OAuth token expired, reauthorization needed
//   - [shared.ErrAPIRequest] : HTTP request failed
//   - [shared.ErrPlayerUnavailable] : audio backend unreachable
//   - [shared.ErrSubmissionFailed] : an individual queue submission failed
//   - [shared.ErrTimeout] : authorization window elapsed
package services
