package cli

// Usage returns the help block listing every supported action.
func Usage() string {
	return `
    AssumeRoleWithSAML --saml_principal_arn <SAML IDP ARN> --saml_role_arn <Role ARN>
        --saml_assertion <File containing SAML Assertion>
        -f <Policy Document> -d <Duration in seconds>
    CreateAccount -n <Account Name> -e <Email Id>
    ListAccounts
    CreateAccessKey
        -n <User Name>
    CreateGroup -n <Group Name>
        -p <Path>
    CreatePolicy -n <Policy Name> -f <Path of the policy document>
        -p <Path> --description <Description of the policy>
    CreateRole -n <Role Name> -f <Path of role policy document>
        -p <Path>
    CreateSAMLProvider -n <Name of saml provider> -f <Path of metadata file>
    CreateUser -n <User Name>
        -p <Path (Optional)>
    DeleteAccessKey -k <Access Key Id to be deleted>
        -n <User Name>
    DeleteRole -n <Role Name>
    DeleteSAMLProvider --arn <Saml Provider ARN>
    DeleteUser -n <User Name>
    GetFederationToken -n <User Name>
        -d <Duration in second> -f <Policy Document File>
    ListAccessKeys
        -n <User Name>
    ListRoles -p <Path Prefix>
    ListSAMLProviders
    ListUsers
        -p <Path Prefix>
    UpdateSAMLProvider --arn <SAML Provider ARN> -f <Path of metadata file>
    UpdateUser -n <Old User Name>
        --new_user <New User Name> -p <New Path>
    UpdateAccessKey -k <access key to be updated> -s <Active/Inactive>
        -n <User Name>
    CreateBucket -n <Bucket Name>
    DeleteBucket -n <Bucket Name>
    ListBuckets
    PutObject -n <Bucket Name> -p <Object Key> -f <File to upload>
    GetObject -n <Bucket Name> -p <Object Key>
        -f <File to write (Optional, defaults to stdout)>
    DeleteObject -n <Bucket Name> -p <Object Key>
`
}
