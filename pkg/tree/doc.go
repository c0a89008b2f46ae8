// Package tree implements a generic N-ary tree with identity-based access
// and a lossless line-oriented text serialization.
//
// Nodes are owned exclusively by their tree and are never exposed to
// callers; all access goes through integer ids handed out at insertion
// time. The serialized form is a pre-order flattening where every node
// contributes one value line and one end-of-children marker line, which is
// enough to reconstruct the exact hierarchy.
//
// The container is not safe for concurrent use. Callers that share a tree
// across goroutines must serialize access externally.
package tree
