package dto

import (
	"github.com/vlgmic/warehouse-ingest/models"
)

type UploadResponse struct {
	Filename      string   `json:"filename"`
	Headers       []string `json:"headers"`
	HdfsDirectory string   `json:"hdfs_directory"`
	HdfsFilePath  string   `json:"hdfs_file_path"`
	DataRowCount  int      `json:"data_row_count"`
}

func AdaptUploadResponse(session models.UploadSession) UploadResponse {
	return UploadResponse{
		Filename:      session.Filename,
		Headers:       session.Headers,
		HdfsDirectory: session.StagingDir,
		HdfsFilePath:  session.RemoteFile,
		DataRowCount:  session.DataRowCount,
	}
}

type ColumnsInputBody struct {
	HdfsFilePath  string   `form:"hdfs_file_path" binding:"required"`
	HdfsDirectory string   `form:"hdfs_directory" binding:"required"`
	TableName     string   `form:"table_name" binding:"required,sql_identifier"`
	ColumnsInfo   []string `form:"columns_info" binding:"required"`
	TypesInfo     []string `form:"types_info" binding:"required"`
	Delimiter     string   `form:"delimiter" binding:"required"`
}

func AdaptColumnMapping(body ColumnsInputBody) models.ColumnMapping {
	return models.ColumnMapping{
		TableName: body.TableName,
		Columns:   body.ColumnsInfo,
		Types:     body.TypesInfo,
		Delimiter: body.Delimiter,
	}
}

type AssignRoleBody struct {
	TableName string `form:"table_name" binding:"required,sql_identifier"`
	Username  string `form:"username" binding:"required,sql_identifier"`
	Role      string `form:"role" binding:"required"`
}

type IngestionResultResponse struct {
	ExternalTableName string `json:"external_table_name"`
	InternalTableName string `json:"internal_table_name"`
}

func AdaptIngestionResult(result models.IngestionResult) IngestionResultResponse {
	return IngestionResultResponse{
		ExternalTableName: result.ExternalTableName,
		InternalTableName: result.InternalTableName,
	}
}
