// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-press/internal/content"
)

func TestEdges_PostCascadesToComments(t *testing.T) {
	edges := content.Edges()

	require.Len(t, edges, 1)
	assert.Equal(t, content.PostEntity, edges[0].Parent)
	assert.Equal(t, content.CommentEntity, edges[0].Child)
	assert.Equal(t, "post_id", edges[0].ForeignKey)
}

func TestResources_ShareShape(t *testing.T) {
	for _, resource := range []struct {
		table, owner, active string
	}{
		{content.PostResource.Table, content.PostResource.OwnerColumn, content.PostResource.ActiveColumn},
		{content.CommentResource.Table, content.CommentResource.OwnerColumn, content.CommentResource.ActiveColumn},
	} {
		assert.Equal(t, "user_id", resource.owner, resource.table)
		assert.Equal(t, "is_active", resource.active, resource.table)
	}
}

func TestValidID(t *testing.T) {
	assert.True(t, content.ValidID("01936f3e-8f5a-7cc1-9d2e-3f4a5b6c7d8e"))
	assert.False(t, content.ValidID("42"))
	assert.False(t, content.ValidID(""))
}
