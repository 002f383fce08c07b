package relation

import (
	"context"
	"fmt"

	pb "github.com/ory/keto/proto/ory/keto/relation_tuples/v1alpha2"
)

// Check asks Keto whether the subject set holds the given relation on the
// object.
func (c *Client) Check(ctx context.Context, namespace, object, relation string, subjectNamespace, subjectObject string) (bool, error) {
	return c.check(ctx, &pb.RelationTuple{
		Namespace: namespace,
		Object:    object,
		Relation:  relation,
		Subject: &pb.Subject{
			Ref: &pb.Subject_Set{
				Set: &pb.SubjectSet{
					Namespace: subjectNamespace,
					Object:    subjectObject,
				},
			},
		},
	})
}

// CheckBySubjectId is the direct-subject form of Check. Invoice logic uses it
// to verify the accounting relation before a payment is recorded.
func (c *Client) CheckBySubjectId(ctx context.Context, namespace, object, relation string, subjectId string) (bool, error) {
	return c.check(ctx, &pb.RelationTuple{
		Namespace: namespace,
		Object:    object,
		Relation:  relation,
		Subject: &pb.Subject{
			Ref: &pb.Subject_Id{
				Id: subjectId,
			},
		},
	})
}

func (c *Client) check(ctx context.Context, tuple *pb.RelationTuple) (bool, error) {
	if c.checkSC == nil {
		return false, ErrReadUnavailable
	}
	resp, err := c.checkSC.Check(ctx, &pb.CheckRequest{Tuple: tuple})
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}
	return resp.Allowed, nil
}
