// Package staffsdk is a Go client for the staffql GraphQL API.
//
// Anonymous operations hang off Client. Register and Login return a Session
// that sends its token on every request:
//
//	client := staffsdk.NewClient("http://localhost:8080")
//	session, err := client.Login(ctx, "a@x.com", "pw1")
//	if err != nil {
//		return err
//	}
//	me, err := session.Me(ctx)
//
// Errors reported by the server are returned as *Error and carry the
// extensions code, see IsCode.
package staffsdk
