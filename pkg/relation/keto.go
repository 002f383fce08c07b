// Package relation wraps the Ory Keto gRPC APIs behind a small client used
// for invoice access control. Resources (invoices, counter offers) are Keto
// objects; users are subjects carrying roles or the accounting relation.
package relation

import (
	"context"
	"fmt"

	pb "github.com/ory/keto/proto/ory/keto/relation_tuples/v1alpha2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client holds the gRPC connections to the Keto read and write APIs.
// It is safe for concurrent use. Either address may be left empty, in which
// case the corresponding operations return ErrWriteUnavailable or
// ErrReadUnavailable.
type Client struct {
	writeConn *grpc.ClientConn
	readConn  *grpc.ClientConn
	writeSC   pb.WriteServiceClient
	checkSC   pb.CheckServiceClient
}

type Config struct {
	WriteAddr string
	ReadAddr  string
}

// NewClient creates a new Keto client and its associated cleanup function.
func NewClient(cfg Config) (*Client, func(), error) {
	var writeConn, readConn *grpc.ClientConn
	var err error

	if cfg.WriteAddr != "" {
		writeConn, err = grpc.NewClient(cfg.WriteAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to keto write api: %w", err)
		}
	}

	if cfg.ReadAddr != "" {
		readConn, err = grpc.NewClient(cfg.ReadAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			if writeConn != nil {
				writeConn.Close()
			}
			return nil, nil, fmt.Errorf("failed to connect to keto read api: %w", err)
		}
	}

	client := &Client{
		writeConn: writeConn,
		readConn:  readConn,
		writeSC:   pb.NewWriteServiceClient(writeConn),
		checkSC:   pb.NewCheckServiceClient(readConn),
	}

	cleanup := func() {
		if writeConn != nil {
			writeConn.Close()
		}
		if readConn != nil {
			readConn.Close()
		}
	}
	return client, cleanup, nil
}

// WriteTuple transactionally applies the accumulated tuple deltas.
func (c *Client) WriteTuple(ctx context.Context, tuples tupleBuilder) error {
	if c.writeSC == nil {
		return ErrWriteUnavailable
	}

	_, err := c.writeSC.TransactRelationTuples(ctx, &pb.TransactRelationTuplesRequest{
		RelationTupleDeltas: tuples,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
