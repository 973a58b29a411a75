// Package ragchat provides a Go client for the ragchat HTTP API.
//
// The service answers questions grounded in uploaded documents: files
// are chunked, embedded and stored server-side; chat queries retrieve
// the most similar chunks and condition the generated answer on them.
//
//	client, _ := ragchat.New("http://localhost:8080")
//	up, _ := client.UploadDocument(ctx, "manual.pdf", content, "manuals")
//	resp, _ := client.Chat(ctx, ragchat.ChatRequest{Message: "How do I reset the device?"})
//	fmt.Println(resp.Response)
package ragchat
