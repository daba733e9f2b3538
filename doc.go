/*
Package sheets is a marketing campaign reporting dashboard backed by a Google Sheets worksheet.

campaign-sheets reads campaign records (dates, project, channel, budget, spend, leads, meetings and
bookings) from a single worksheet, derives the cost per lead, cost per acquisition and conversion
rate for each record and presents them as a web dashboard with a form for appending new records.

campaign-sheets supports the following commands:

  - serve, to run the dashboard
  - get, to download the worksheet and KPIs as a TSV file
  - add, to append the records in a TSV file to the worksheet
  - export, to download the worksheet and KPIs as an XLSX workbook
  - channels, to list the marketing channels in the worksheet
  - version, to display the current version
*/
package sheets
